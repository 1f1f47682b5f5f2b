package accountrepo

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/errorspkg"
)

// RepoFile stores account records in one JSON document keyed by username.
// Every Save rewrites the document through a temporary file and a rename,
// so a crash never leaves a half written document behind.
type RepoFile struct {
	mu      sync.Mutex
	path    string
	records map[string]domain.Account
}

// NewRepoFile opens the document at path. A missing document is an empty store.
func NewRepoFile(path string) (*RepoFile, error) {
	r := &RepoFile{
		path:    path,
		records: make(map[string]domain.Account),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return r, nil
	}

	if err := json.Unmarshal(data, &r.records); err != nil {
		return nil, err
	}

	return r, nil
}

// List returns every stored account ordered by username.
func (r *RepoFile) List(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Account, 0, len(r.records))
	for _, a := range r.records {
		result = append(result, a.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Username < result[j].Username
	})

	return result, nil
}

// Save inserts the account or overwrites the stored record.
func (r *RepoFile) Save(ctx context.Context, a domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]domain.Account, len(r.records)+1)
	for k, v := range r.records {
		next[k] = v
	}
	next[a.Username] = a.Clone()

	if err := r.write(next); err != nil {
		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Str("path", r.path).Msg("cannot write accounts document")

		return errorspkg.ErrInternal
	}

	r.records = next

	return nil
}

func (r *RepoFile) write(records map[string]domain.Account) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".accounts-*.json")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), r.path)
}
