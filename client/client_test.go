package client

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedVars = `APESO_SV =
{
    ["Default"] =
    {
        ["@player"] =
        {
            ["$AccountWide"] =
            {
                ["version"] = 1,
                ["CharID"] = "8798123",
                ["NodeInfo"] =
                {
                    [1] = true,
                    [2] = false,
                    [3] = true,
                },
                ["CompletedQuestsByChar"] =
                {
                    ["8798123"] =
                    {
                        [4] = true,
                        [0] = true,
                        [7] = false,
                    },
                    ["5550000"] =
                    {
                        [9] = true,
                    },
                },
            },
        },
    },
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSavedVariables(t *testing.T) {
	path := writeFile(t, t.TempDir(), "APESO.lua", savedVars)

	s, err := ReadSavedVariables(path)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Version)
	assert.Equal(t, "8798123", s.CharID)
	assert.Equal(t, []bool{true, false, true}, s.NodeInfo)
	assert.Equal(t, []int{0, 4}, s.CompletedQuests)
	assert.Equal(t, []int{150000, 150002, 151000, 151004}, s.LocationIDs())
}

func TestReadSavedVariables_SparseNodeInfo(t *testing.T) {
	path := writeFile(t, t.TempDir(), "APESO.lua", `APESO_SV = {
		CharID = "1",
		NodeInfo = { [5] = true, [2] = true },
	}`)

	s, err := ReadSavedVariables(path)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, false, true}, s.NodeInfo)
	assert.Empty(t, s.CompletedQuests)
}

func TestReadSavedVariables_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "APESO.lua", `APESO_SV = {`)
	_, err := ReadSavedVariables(path)
	assert.Error(t, err)
}

func TestTracker_DiffsSnapshots(t *testing.T) {
	tr := NewTracker(nil)

	fresh, err := tr.Observe(&State{CharID: "a", NodeInfo: []bool{true}})
	require.NoError(t, err)
	assert.Equal(t, []int{150000}, fresh)
	assert.Equal(t, "a", tr.Character())

	fresh, err = tr.Observe(&State{CharID: "a", NodeInfo: []bool{true, true}, CompletedQuests: []int{3}})
	require.NoError(t, err)
	assert.Equal(t, []int{150001, 151003}, fresh)

	fresh, err = tr.Observe(&State{CharID: "a", NodeInfo: []bool{true, true}})
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestTracker_MarkChecked(t *testing.T) {
	tr := NewTracker(nil)
	tr.MarkChecked(150000)

	fresh, err := tr.Observe(&State{CharID: "a", NodeInfo: []bool{true, true}})
	require.NoError(t, err)
	assert.Equal(t, []int{150001}, fresh)
}

func TestTracker_CharacterLock(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.Observe(&State{CharID: "a"})
	require.NoError(t, err)

	_, err = tr.Observe(&State{CharID: "b", NodeInfo: []bool{true}})
	assert.ErrorIs(t, err, ErrCharacterSwitched)
	assert.True(t, tr.Paused())

	tr.Unlock()
	fresh, err := tr.Observe(&State{CharID: "b", NodeInfo: []bool{true}})
	require.NoError(t, err)
	assert.Equal(t, []int{150000}, fresh)
	assert.Equal(t, "b", tr.Character())
}

func TestRender(t *testing.T) {
	got := Render([]ReceivedItem{{152000, 150003}, {152022, 151001}})
	want := "APESO_ReceivedItems = {\n" +
		"    { item_id = 152000, location_id = 150003 },\n" +
		"    { item_id = 152022, location_id = 151001 },\n" +
		"}"
	assert.Equal(t, want, got)
	assert.Equal(t, "APESO_ReceivedItems = {\n}", Render(nil))
}

func TestItemsWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AddOns", "APESO", "Items.lua")
	w := NewItemsWriter(path)

	require.NoError(t, w.Add(ReceivedItem{1, 2}))
	require.NoError(t, w.Add(ReceivedItem{3, 4}))
	assert.Equal(t, 2, w.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render([]ReceivedItem{{1, 2}, {3, 4}}), string(data))

	require.NoError(t, w.SetAll([]ReceivedItem{{5, 6}}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render([]ReceivedItem{{5, 6}}), string(data))

	require.NoError(t, w.Reset())
	assert.Equal(t, 0, w.Len())
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

type recordingSink struct {
	calls [][]int
	err   error
}

func (s *recordingSink) LocationChecks(_ context.Context, ids []int) error {
	s.calls = append(s.calls, ids)
	return s.err
}

func newTestPoller(t *testing.T, content string, age time.Duration) (*Poller, *recordingSink, string) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "APESO.lua", content)
	mod := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mod, mod))

	sink := &recordingSink{}
	p := NewPoller(path, sink, nil)
	p.now = func() time.Time { return mod.Add(age) }
	return p, sink, path
}

func TestPoller_ForwardsNewChecks(t *testing.T) {
	p, sink, _ := newTestPoller(t, savedVars, time.Second)

	require.NoError(t, p.Poll(context.Background()))
	require.Len(t, sink.calls, 1)
	assert.Equal(t, []int{150000, 150002, 151000, 151004}, sink.calls[0])

	// Unchanged mtime: nothing read.
	require.NoError(t, p.Poll(context.Background()))
	assert.Len(t, sink.calls, 1)
}

func TestPoller_IgnoresStaleFile(t *testing.T) {
	p, sink, _ := newTestPoller(t, savedVars, time.Minute)

	require.NoError(t, p.Poll(context.Background()))
	assert.Empty(t, sink.calls)
}

func TestPoller_MissingFile(t *testing.T) {
	sink := &recordingSink{}
	p := NewPoller(filepath.Join(t.TempDir(), "nope.lua"), sink, nil)
	assert.NoError(t, p.Poll(context.Background()))
	assert.Empty(t, sink.calls)
}

func TestPoller_RetriesFailedDelivery(t *testing.T) {
	p, sink, _ := newTestPoller(t, savedVars, time.Second)
	sink.err = errors.New("offline")

	assert.Error(t, p.Poll(context.Background()))

	sink.err = nil
	require.NoError(t, p.Poll(context.Background()))
	require.Len(t, sink.calls, 2)
	assert.Equal(t, sink.calls[0], sink.calls[1])
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	p, _, _ := newTestPoller(t, savedVars, time.Second)
	p.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestSinkFunc(t *testing.T) {
	var got []int
	s := SinkFunc(func(_ context.Context, ids []int) error {
		got = ids
		return nil
	})
	require.NoError(t, s.LocationChecks(context.Background(), []int{1}))
	assert.Equal(t, []int{1}, got)
}
