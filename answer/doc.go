// Package answer turns retrieved context documents into a grounded answer.
// The prompt instructs the model to use only the provided CONTEXT blocks.
package answer
