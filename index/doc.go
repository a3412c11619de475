// Package index builds the document collection from a record source.
// One indexing pass reads every row, normalizes it into a canonical
// document, embeds the text and upserts the result.
package index
