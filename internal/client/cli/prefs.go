package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/evercare/planhub/internal/client/localstate"
)

const defaultPageSize = 20

// preferences are small per-user CLI settings kept in local state under a
// single key. Absent or corrupt records read as defaults.
type preferences struct {
	PageSize int `json:"page_size"`
}

func (a *App) loadPrefs(ctx context.Context) preferences {
	p := preferences{PageSize: defaultPageSize}
	raw, err := a.kv.Get(ctx, localstate.KeyPreferences)
	if err != nil || raw == nil {
		return p
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return preferences{PageSize: defaultPageSize}
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	return p
}

// pageSize is the list-page length every list command requests.
func (a *App) pageSize(ctx context.Context) int {
	return a.loadPrefs(ctx).PageSize
}

// Prefs prints the stored preferences.
func (a *App) Prefs(ctx context.Context) error {
	p := a.loadPrefs(ctx)
	fmt.Printf("page-size = %d\n", p.PageSize)
	return nil
}

// SetPref updates a single preference by name and persists the record.
func (a *App) SetPref(ctx context.Context, key, value string) error {
	p := a.loadPrefs(ctx)

	switch key {
	case "page-size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("page-size must be a positive integer, got %q", value)
		}
		p.PageSize = n
	default:
		return fmt.Errorf("unknown preference %q (supported: page-size)", key)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, localstate.KeyPreferences, raw); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}
