package localstore

import "github.com/rs/zerolog"

// Stores bundles the per-entity collection stores over a shared KV.
// Constructed once per process and passed by reference; there are no
// package-level singletons.
type Stores struct {
	Notes   *NoteStore
	Tasks   *TaskStore
	Links   *LinkStore
	Ideas   *IdeaStore
	Prompts *PromptStore
	Chips   *ChipStore
	Clients *ClientStore
	Finance *FinanceStore
}

// NewStores builds every collection store over kv.
func NewStores(kv KV, log zerolog.Logger) *Stores {
	return &Stores{
		Notes:   NewNoteStore(kv, log),
		Tasks:   NewTaskStore(kv, log),
		Links:   NewLinkStore(kv, log),
		Ideas:   NewIdeaStore(kv, log),
		Prompts: NewPromptStore(kv, log),
		Chips:   NewChipStore(kv, log),
		Clients: NewClientStore(kv, log),
		Finance: NewFinanceStore(kv, log),
	}
}
