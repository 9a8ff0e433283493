// Package repo is the data-access facade the rest of the application
// talks to. Every operation branches exactly once on the settings
// UseRemote flag, routing to either the local collection stores or the
// remote backend adapter; the branch never leaks into call sites.
package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/remote"
	"github.com/severinoia/central/internal/settings"
)

// Repository routes data operations between the local stores and the
// remote adapter. Constructed once per session and passed by reference.
type Repository struct {
	local    *localstore.Stores
	remote   *remote.Store
	settings *settings.Store
}

// New builds the facade. remoteStore may be nil when no remote backend
// is configured; the UseRemote flag must then stay false.
func New(local *localstore.Stores, remoteStore *remote.Store, st *settings.Store) *Repository {
	return &Repository{local: local, remote: remoteStore, settings: st}
}

// Settings returns the settings store for direct access.
func (r *Repository) Settings() *settings.Store {
	return r.settings
}

// Local returns the underlying local stores. The migration engine reads
// snapshots through these regardless of the routing flag.
func (r *Repository) Local() *localstore.Stores {
	return r.local
}

// route resolves the backend choice and the user id once per call.
func (r *Repository) route() (useRemote bool, userID string, err error) {
	st, err := r.settings.Get()
	if err != nil {
		return false, "", err
	}
	if st.UseRemote && r.remote != nil {
		return true, st.UserID, nil
	}
	return false, st.UserID, nil
}

// --- Notes ---

func (r *Repository) ListNotes(ctx context.Context) ([]model.Note, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListNotes(ctx, userID)
	}
	return r.local.Notes.List()
}

func (r *Repository) AddNote(ctx context.Context, title, content string) (model.Note, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Note{}, err
	}
	if useRemote {
		now := codec.Now()
		n := model.Note{
			ID:        uuid.New().String(),
			Title:     title,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.remote.InsertNote(ctx, userID, n); err != nil {
			return model.Note{}, err
		}
		return n, nil
	}
	return r.local.Notes.Add(title, content)
}

func (r *Repository) UpdateNote(ctx context.Context, id string, p localstore.NotePatch) (model.Note, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Note{}, false, err
	}
	if useRemote {
		n, found, err := r.remote.GetNote(ctx, userID, id)
		if err != nil || !found {
			return model.Note{}, false, err
		}
		p.Apply(&n)
		n.UpdatedAt = codec.Now()
		found, err = r.remote.UpdateNote(ctx, userID, n)
		return n, found, err
	}
	return r.local.Notes.Update(id, p)
}

func (r *Repository) DeleteNote(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeleteNote(ctx, userID, id)
	}
	return r.local.Notes.Delete(id)
}

// --- Tasks ---

func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListTasks(ctx, userID)
	}
	return r.local.Tasks.List()
}

// TasksDueToday filters tasks to those due on the current day.
func (r *Repository) TasksDueToday(ctx context.Context) ([]model.Task, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if !useRemote {
		return r.local.Tasks.DueToday()
	}
	tasks, err := r.remote.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := codec.Now()
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.SameDay(today) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *Repository) AddTask(ctx context.Context, title, description string, due *codec.Time) (model.Task, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Task{}, err
	}
	if useRemote {
		t := model.Task{
			ID:          uuid.New().String(),
			Title:       title,
			Description: description,
			Status:      model.TaskStatusPending,
			DueDate:     due,
			CreatedAt:   codec.Now(),
		}
		if err := r.remote.InsertTask(ctx, userID, t); err != nil {
			return model.Task{}, err
		}
		return t, nil
	}
	return r.local.Tasks.Add(title, description, due)
}

func (r *Repository) UpdateTask(ctx context.Context, id string, p localstore.TaskPatch) (model.Task, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Task{}, false, err
	}
	if useRemote {
		t, found, err := r.remote.GetTask(ctx, userID, id)
		if err != nil || !found {
			return model.Task{}, false, err
		}
		p.Apply(&t)
		found, err = r.remote.UpdateTask(ctx, userID, t)
		return t, found, err
	}
	return r.local.Tasks.Update(id, p)
}

func (r *Repository) UpdateTaskStatus(ctx context.Context, id, status string) (model.Task, bool, error) {
	return r.UpdateTask(ctx, id, localstore.TaskPatch{Status: &status})
}

func (r *Repository) DeleteTask(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeleteTask(ctx, userID, id)
	}
	return r.local.Tasks.Delete(id)
}

// --- Useful links ---

func (r *Repository) ListLinks(ctx context.Context) ([]model.UsefulLink, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListLinks(ctx, userID)
	}
	return r.local.Links.List()
}

func (r *Repository) AddLink(ctx context.Context, title, url, description, category string) (model.UsefulLink, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.UsefulLink{}, err
	}
	if useRemote {
		l := model.UsefulLink{
			ID:          uuid.New().String(),
			Title:       title,
			URL:         url,
			Description: description,
			Category:    category,
			CreatedAt:   codec.Now(),
		}
		if err := r.remote.InsertLink(ctx, userID, l); err != nil {
			return model.UsefulLink{}, err
		}
		return l, nil
	}
	return r.local.Links.Add(title, url, description, category)
}

func (r *Repository) UpdateLink(ctx context.Context, id string, p localstore.LinkPatch) (model.UsefulLink, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.UsefulLink{}, false, err
	}
	if useRemote {
		l, found, err := r.remote.GetLink(ctx, userID, id)
		if err != nil || !found {
			return model.UsefulLink{}, false, err
		}
		p.Apply(&l)
		found, err = r.remote.UpdateLink(ctx, userID, l)
		return l, found, err
	}
	return r.local.Links.Update(id, p)
}

func (r *Repository) DeleteLink(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeleteLink(ctx, userID, id)
	}
	return r.local.Links.Delete(id)
}

// --- Ideas ---

func (r *Repository) ListIdeas(ctx context.Context) ([]model.Idea, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListIdeas(ctx, userID)
	}
	return r.local.Ideas.List()
}

func (r *Repository) AddIdea(ctx context.Context, title, description, category string) (model.Idea, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Idea{}, err
	}
	if useRemote {
		i := model.Idea{
			ID:          uuid.New().String(),
			Title:       title,
			Description: description,
			Category:    category,
			CreatedAt:   codec.Now(),
		}
		if err := r.remote.InsertIdea(ctx, userID, i); err != nil {
			return model.Idea{}, err
		}
		return i, nil
	}
	return r.local.Ideas.Add(title, description, category)
}

func (r *Repository) UpdateIdea(ctx context.Context, id string, p localstore.IdeaPatch) (model.Idea, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Idea{}, false, err
	}
	if useRemote {
		i, found, err := r.remote.GetIdea(ctx, userID, id)
		if err != nil || !found {
			return model.Idea{}, false, err
		}
		p.Apply(&i)
		found, err = r.remote.UpdateIdea(ctx, userID, i)
		return i, found, err
	}
	return r.local.Ideas.Update(id, p)
}

func (r *Repository) DeleteIdea(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeleteIdea(ctx, userID, id)
	}
	return r.local.Ideas.Delete(id)
}

// --- Prompts ---

func (r *Repository) ListPrompts(ctx context.Context) ([]model.Prompt, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListPrompts(ctx, userID)
	}
	return r.local.Prompts.List()
}

func (r *Repository) AddPrompt(ctx context.Context, title, content, category string) (model.Prompt, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Prompt{}, err
	}
	if useRemote {
		p := model.Prompt{
			ID:        uuid.New().String(),
			Title:     title,
			Content:   content,
			Category:  category,
			CreatedAt: codec.Now(),
		}
		if err := r.remote.InsertPrompt(ctx, userID, p); err != nil {
			return model.Prompt{}, err
		}
		return p, nil
	}
	return r.local.Prompts.Add(title, content, category)
}

func (r *Repository) UpdatePrompt(ctx context.Context, id string, p localstore.PromptPatch) (model.Prompt, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Prompt{}, false, err
	}
	if useRemote {
		pr, found, err := r.remote.GetPrompt(ctx, userID, id)
		if err != nil || !found {
			return model.Prompt{}, false, err
		}
		p.Apply(&pr)
		found, err = r.remote.UpdatePrompt(ctx, userID, pr)
		return pr, found, err
	}
	return r.local.Prompts.Update(id, p)
}

func (r *Repository) DeletePrompt(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeletePrompt(ctx, userID, id)
	}
	return r.local.Prompts.Delete(id)
}

// --- Chips ---

func (r *Repository) ListChips(ctx context.Context) ([]model.ChipInstance, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListChips(ctx, userID)
	}
	return r.local.Chips.ListAlphabetical()
}

func (r *Repository) GetChip(ctx context.Context, id string) (model.ChipInstance, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.ChipInstance{}, false, err
	}
	if useRemote {
		return r.remote.GetChip(ctx, userID, id)
	}
	return r.local.Chips.Get(id)
}

func (r *Repository) AddChip(ctx context.Context, name, phone string) (model.ChipInstance, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.ChipInstance{}, err
	}
	if useRemote {
		c := model.ChipInstance{
			ID:        uuid.New().String(),
			Name:      name,
			Phone:     phone,
			Status:    model.ChipStatusInactive,
			CreatedAt: codec.Now(),
		}
		if err := r.remote.InsertChip(ctx, userID, c); err != nil {
			return model.ChipInstance{}, err
		}
		return c, nil
	}
	return r.local.Chips.Add(name, phone)
}

func (r *Repository) UpdateChipStatus(ctx context.Context, id, status string) (model.ChipInstance, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.ChipInstance{}, false, err
	}
	if useRemote {
		c, found, err := r.remote.GetChip(ctx, userID, id)
		if err != nil || !found {
			return model.ChipInstance{}, false, err
		}
		c.Status = status
		found, err = r.remote.UpdateChip(ctx, userID, c)
		return c, found, err
	}
	return r.local.Chips.UpdateStatus(id, status)
}

func (r *Repository) DeleteChip(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeleteChip(ctx, userID, id)
	}
	return r.local.Chips.Delete(id)
}

// --- Clients ---

func (r *Repository) ListClients(ctx context.Context) ([]model.Client, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListClients(ctx, userID)
	}
	return r.local.Clients.List()
}

func (r *Repository) AddClient(ctx context.Context, client model.Client) (model.Client, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Client{}, err
	}
	if useRemote {
		if client.ID == "" {
			client.ID = uuid.New().String()
		}
		now := codec.Now()
		client.CreatedAt = now
		client.UpdatedAt = now
		if client.Status == "" {
			client.Status = model.ClientStatusProspect
		}
		if client.Category == "" {
			client.Category = model.ClientCategoryIndividual
		}
		if err := r.remote.InsertClient(ctx, userID, client); err != nil {
			return model.Client{}, err
		}
		return client, nil
	}
	return r.local.Clients.Add(client)
}

func (r *Repository) UpdateClient(ctx context.Context, id string, p localstore.ClientPatch) (model.Client, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.Client{}, false, err
	}
	if useRemote {
		c, found, err := r.remote.GetClient(ctx, userID, id)
		if err != nil || !found {
			return model.Client{}, false, err
		}
		p.Apply(&c)
		c.UpdatedAt = codec.Now()
		found, err = r.remote.UpdateClient(ctx, userID, c)
		return c, found, err
	}
	return r.local.Clients.Update(id, p)
}

func (r *Repository) DeleteClient(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeleteClient(ctx, userID, id)
	}
	return r.local.Clients.Delete(id)
}

// --- Financial records ---

func (r *Repository) ListFinancialRecords(ctx context.Context) ([]model.FinancialRecord, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if useRemote {
		return r.remote.ListFinancialRecords(ctx, userID)
	}
	return r.local.Finance.List()
}

// FinancialRecordsByClient returns records referencing clientID. The
// reference is weak; an empty result is normal.
func (r *Repository) FinancialRecordsByClient(ctx context.Context, clientID string) ([]model.FinancialRecord, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return nil, err
	}
	if !useRemote {
		return r.local.Finance.ListByClient(clientID)
	}
	records, err := r.remote.ListFinancialRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := records[:0:0]
	for _, rec := range records {
		if rec.ClientID == clientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *Repository) AddFinancialRecord(ctx context.Context, record model.FinancialRecord) (model.FinancialRecord, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.FinancialRecord{}, err
	}
	if useRemote {
		if record.ID == "" {
			record.ID = uuid.New().String()
		}
		now := codec.Now()
		record.CreatedAt = now
		record.UpdatedAt = now
		if record.Date.IsZero() {
			record.Date = now
		}
		if record.Status == "" {
			record.Status = model.RecordStatusPending
		}
		if err := r.remote.InsertFinancialRecord(ctx, userID, record); err != nil {
			return model.FinancialRecord{}, err
		}
		return record, nil
	}
	return r.local.Finance.Add(record)
}

func (r *Repository) UpdateFinancialRecord(ctx context.Context, id string, p localstore.FinancePatch) (model.FinancialRecord, bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return model.FinancialRecord{}, false, err
	}
	if useRemote {
		rec, found, err := r.remote.GetFinancialRecord(ctx, userID, id)
		if err != nil || !found {
			return model.FinancialRecord{}, false, err
		}
		p.Apply(&rec)
		rec.UpdatedAt = codec.Now()
		found, err = r.remote.UpdateFinancialRecord(ctx, userID, rec)
		return rec, found, err
	}
	return r.local.Finance.Update(id, p)
}

func (r *Repository) DeleteFinancialRecord(ctx context.Context, id string) (bool, error) {
	useRemote, userID, err := r.route()
	if err != nil {
		return false, err
	}
	if useRemote {
		return r.remote.DeleteFinancialRecord(ctx, userID, id)
	}
	return r.local.Finance.Delete(id)
}
