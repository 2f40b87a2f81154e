package pdf

import "leadway/caution_backend/internal/domain/quote/document"

type Generator interface {
	Generate(doc *document.Document) ([]byte, error)
}
