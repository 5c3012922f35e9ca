package service

import (
	"strings"
	"sync"

	"bistdesk/pkg/asenax"

	"go.uber.org/zap"
)

// maxSearchResults caps directory searches the way a dropdown would.
const maxSearchResults = 10

// SymbolsService serves the BIST symbol directory. The directory is
// fetched once per process and falls back to a built-in list when the
// listing API is unavailable.
type SymbolsService interface {
	List() []string
	Search(query string) []string
}

type symbolsServiceHandler struct {
	AsenaxClient asenax.Client
	Logger       *zap.SugaredLogger

	loadOnce sync.Once
	symbols  []string
}

func NewSymbolsService(asenaxClient asenax.Client, logger *zap.SugaredLogger) SymbolsService {
	return &symbolsServiceHandler{
		AsenaxClient: asenaxClient,
		Logger:       logger,
	}
}

func (h *symbolsServiceHandler) load() []string {
	h.loadOnce.Do(func() {
		symbols, err := h.AsenaxClient.List()
		if err != nil {
			h.Logger.Warnf("using built-in symbol directory: %v", err)
			symbols = asenax.DefaultSymbols
		}
		h.symbols = symbols
	})
	return h.symbols
}

func (h *symbolsServiceHandler) List() []string {
	return h.load()
}

// Search prefers prefix matches and only falls back to substring
// matches when no symbol starts with the query.
func (h *symbolsServiceHandler) Search(query string) []string {
	symbols := h.load()

	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" {
		return symbols
	}

	matches := []string{}
	for _, s := range symbols {
		if strings.HasPrefix(s, query) {
			matches = append(matches, s)
			if len(matches) == maxSearchResults {
				return matches
			}
		}
	}
	if len(matches) > 0 {
		return matches
	}

	for _, s := range symbols {
		if strings.Contains(s, query) {
			matches = append(matches, s)
			if len(matches) == maxSearchResults {
				break
			}
		}
	}
	return matches
}
