package list

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"entq/internal/cli/paramutils"
	"entq/internal/domain/entity"
	"entq/internal/listview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLister struct {
	vars       *entity.QueryVariables
	value      []*entity.Entity
	errorValue error
}

func (m *mockLister) List(ctx context.Context, vars *entity.QueryVariables) ([]*entity.Entity, error) {
	m.vars = vars
	return m.value, m.errorValue
}

func Test_fillListCmdParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params := &listCmdParams{}
		fillListCmdParams(&paramutils.MockFlagSet{}, params)
		assert.Equal(t, &listCmdParams{
			Sort: entity.SortSpec{Field: "displayName", Direction: entity.SortAsc},
		}, params)
	})

	t.Run("reads flags", func(t *testing.T) {
		params := &listCmdParams{}
		fillListCmdParams(&paramutils.MockFlagSet{StringMap: map[string]interface{}{
			"sort":   "name",
			"desc":   true,
			"search": "cust",
			"watch":  true,
		}}, params)
		assert.Equal(t, &listCmdParams{
			Sort:   entity.SortSpec{Field: "name", Direction: entity.SortDesc},
			Search: "cust",
			Watch:  true,
		}, params)
	})
}

func Test_execute(t *testing.T) {
	t.Run("prints one line per entity", func(t *testing.T) {
		m := &mockLister{value: []*entity.Entity{
			{ID: "e1", DisplayName: "Customer", Versions: []*entity.Version{{VersionNumber: 2}}},
			{ID: "e2", DisplayName: "Order"},
		}}
		out := &bytes.Buffer{}

		err := execute(context.Background(), m, "app-1", &listCmdParams{Search: "o"}, out)

		require.NoError(t, err)
		assert.Equal(t, "o", m.vars.WhereName.Contains)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Len(t, lines, 4)
		assert.Contains(t, lines[2], "Customer")
		assert.Contains(t, lines[2], "V2")
		assert.Contains(t, lines[2], "/app-1/entities/e1")
	})

	t.Run("returns query errors", func(t *testing.T) {
		vErr := errors.New("query err")
		err := execute(context.Background(), &mockLister{errorValue: vErr}, "app-1", &listCmdParams{}, &bytes.Buffer{})
		assert.EqualError(t, err, vErr.Error())
	})
}

func Test_renderTable(t *testing.T) {
	t.Run("shows lock owner and commit", func(t *testing.T) {
		s := renderTable([]*listview.Row{{
			Name:     "Customer",
			LockedBy: &listview.Avatar{Name: "Ada Lovelace"},
			Commit: &listview.CommitSummary{
				Author:    &listview.Avatar{Name: "Alan Turing"},
				Message:   "add email\n\nlong body",
				CreatedAt: time.Date(2024, 2, 28, 9, 30, 0, 0, time.Local),
			},
		}})

		assert.Contains(t, s, "Ada Lovelace")
		assert.Contains(t, s, "2024-02-28 09:30 Alan Turing add email")
		assert.NotContains(t, s, "long body")
	})
}

func Test_watch(t *testing.T) {
	t.Run("renders until cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		m := &listview.MockQueryClient{Value: []*entity.Entity{{ID: "e1", DisplayName: "Customer"}}}
		out := &syncBuffer{}

		done := make(chan error)
		go func() { done <- watch(ctx, m, "app-1", &listCmdParams{}, out) }()

		assert.Eventually(t, func() bool { return m.CallCount() > 0 }, time.Second, time.Millisecond)
		cancel()
		assert.NoError(t, <-done)
	})
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}
