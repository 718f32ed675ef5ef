// Package markdown splits news documents into metadata and body, normalises
// the metadata into article records, renders markdown bodies with goldmark,
// and estimates reading time.
package markdown
