// Package memory provides the memory stack of an ELIZA chatbot: responses
// prepared from a keyword's memory rules that are replayed, oldest first,
// when a later turn produces no direct response.
//
// A Stack belongs to exactly one chatbot and lives as long as its
// conversation; nothing is persisted.
package memory
