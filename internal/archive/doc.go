// Package archive decodes the NSKeyedArchiver property lists that Kindle.app
// stores in the ZSYNCMETADATAATTRIBUTES column of its BookData.sqlite database.
//
// A keyed archive is a flat, index-addressed object table plus integer
// back-references: the decoded plist carries an "$objects" array of archived
// values, a "$top" dictionary naming the entry points, and per-object "$class"
// tags. Inline values are replaced by UIDs, integer indexes into "$objects",
// so the same object may be referenced from several places.
//
// The package consists of three pieces:
//
//   - Decode: parses a binary plist blob into a RawArchive. A nil or empty
//     blob is a valid absent input, not an error.
//
//   - Resolve: walks the reference graph rooted at $top["root"] and returns a
//     plain nested value, free of UIDs and "$"-prefixed bookkeeping keys.
//     Archived NSArray and NSDictionary wrappers are collapsed into native
//     slices and maps. Resolution is memoized per call so aliased references
//     resolve once, and recursion depth is bounded so a cyclic or malformed
//     archive fails instead of exhausting the stack.
//
//   - Extract: reads a single attribute out of a resolved tree by key path,
//     flattening list values into a comma-separated string for tabular use.
//
// Callers treat every per-row failure as "no metadata": decode and resolve
// errors are logged and the row yields absent attributes, never a failed run.
package archive
