package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/howardmhl/TabletopAndBottoms/internal/campaign"
	"github.com/howardmhl/TabletopAndBottoms/internal/gviz"
	"github.com/howardmhl/TabletopAndBottoms/internal/sheet"
	"github.com/howardmhl/TabletopAndBottoms/internal/stats"
)

// DefaultFetchTimeout bounds a single tab fetch.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves one tab of the source spreadsheet.
type Fetcher interface {
	FetchTable(ctx context.Context, tab string) (*gviz.Table, error)
}

// Config names the spreadsheet tabs and the optional column hints used when
// resolving the log and players schemas.
type Config struct {
	LogTab      string
	PlayersTab  string
	GamesTab    string
	CampaignTab string // empty disables the campaign view

	MatchHints  map[string]string
	PlayerHints map[string]string

	FetchTimeout time.Duration
}

// Coordinator owns all mutable state and processes commands sequentially.
// Fetches run concurrently but their results are applied one at a time, so
// the snapshot is always internally consistent.
type Coordinator struct {
	commands    chan Command
	subscribers []chan Event
	fetcher     Fetcher
	cfg         Config
	state       *State
	log         *logrus.Logger
}

// New creates a new Coordinator.
func New(fetcher Fetcher, cfg Config, log *logrus.Logger) *Coordinator {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	return &Coordinator{
		commands:    make(chan Command, 100),
		subscribers: make([]chan Event, 0),
		fetcher:     fetcher,
		cfg:         cfg,
		state:       NewState(),
		log:         log,
	}
}

// Send submits a command to the coordinator.
func (c *Coordinator) Send(cmd Command) {
	c.commands <- cmd
}

// Subscribe creates a new event channel for a consumer. Must be called
// before Run.
func (c *Coordinator) Subscribe() <-chan Event {
	ch := make(chan Event, 100)
	c.subscribers = append(c.subscribers, ch)
	return ch
}

// Run starts the coordinator loop. It blocks until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	c.log.Info("coordinator started")
	for {
		select {
		case <-ctx.Done():
			c.log.Info("coordinator shutting down")
			return
		case cmd := <-c.commands:
			c.handleCommand(ctx, cmd)
		}
	}
}

func (c *Coordinator) emit(e Event) {
	for _, ch := range c.subscribers {
		select {
		case ch <- e:
		default:
			c.log.Warn("subscriber event channel full, dropping event")
		}
	}
}

func (c *Coordinator) handleCommand(ctx context.Context, cmd Command) {
	switch cmd := cmd.(type) {
	case Refresh:
		c.handleRefresh(ctx, cmd)
	case SelectGame:
		err := c.handleSelectGame(cmd)
		if cmd.Response != nil {
			cmd.Response <- err
		}
	case tableFetched:
		c.handleTableFetched(cmd)
	case getSnapshotCmd:
		cmd.Response <- c.state.snapshot
	}
}

// tables returns every configured table.
func (c *Coordinator) tables() []Table {
	ts := []Table{TableLog, TablePlayers, TableGames}
	if c.cfg.CampaignTab != "" {
		ts = append(ts, TableCampaign)
	}
	return ts
}

func (c *Coordinator) tabName(t Table) string {
	switch t {
	case TableLog:
		return c.cfg.LogTab
	case TablePlayers:
		return c.cfg.PlayersTab
	case TableGames:
		return c.cfg.GamesTab
	case TableCampaign:
		return c.cfg.CampaignTab
	default:
		return ""
	}
}

func (c *Coordinator) handleRefresh(ctx context.Context, cmd Refresh) {
	tables := cmd.Tables
	if len(tables) == 0 {
		tables = c.tables()
	}

	for _, t := range tables {
		tab := c.tabName(t)
		if tab == "" {
			continue
		}

		c.state.nextSeq[t]++
		seq := c.state.nextSeq[t]
		requestID := uuid.New().String()

		c.log.WithFields(logrus.Fields{
			"table":      t.String(),
			"tab":        tab,
			"seq":        seq,
			"request_id": requestID,
		}).Debug("fetching table")

		go func(t Table, tab string, seq uint64, requestID string) {
			fctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
			defer cancel()

			payload, err := c.fetcher.FetchTable(fctx, tab)
			c.Send(tableFetched{
				Table:     t,
				Seq:       seq,
				RequestID: requestID,
				Payload:   payload,
				Err:       err,
			})
		}(t, tab, seq, requestID)
	}
}

func (c *Coordinator) handleTableFetched(cmd tableFetched) {
	logger := c.log.WithFields(logrus.Fields{
		"table":      cmd.Table.String(),
		"seq":        cmd.Seq,
		"request_id": cmd.RequestID,
	})

	// A completion older than one already applied is stale. Dropping it
	// keeps per-table state monotonic even when fetches finish out of order.
	if cmd.Seq <= c.state.applied[cmd.Table] {
		logger.Debug("discarding stale fetch result")
		return
	}
	c.state.applied[cmd.Table] = cmd.Seq

	err := cmd.Err
	if err == nil {
		err = c.applyTable(cmd.Table, cmd.Payload)
	}
	if err != nil {
		logger.WithError(err).Warn("table reload failed, keeping previous data")
		status := c.state.snapshot.Sync[cmd.Table.String()]
		status.LastError = err.Error()
		c.state.setSync(cmd.Table, status)
		c.emit(ReloadFailed{Table: cmd.Table.String(), Message: err.Error()})
		return
	}

	c.state.setSync(cmd.Table, SyncStatus{LastSync: time.Now()})
	c.state.snapshot.Version++
	logger.WithField("version", c.state.snapshot.Version).Info("table reloaded")
	c.emit(SnapshotApplied{
		Version: c.state.snapshot.Version,
		Table:   cmd.Table.String(),
	})
}

// applyTable parses one fetched payload and rebuilds the affected parts of
// the snapshot. Derived stats are always recomputed from scratch, never
// patched.
func (c *Coordinator) applyTable(t Table, payload *gviz.Table) error {
	snap := &c.state.snapshot
	switch t {
	case TableLog:
		matches, err := sheet.ParseMatchTable(payload, c.cfg.MatchHints)
		if err != nil {
			return err
		}
		snap.Matches = matches
		snap.PlayerStats = stats.ComputePlayerStats(matches)
		snap.GameSummaries, snap.GamePlayers = stats.ComputeGameStats(matches)
		snap.SelectedGame = stats.ReconcileSelection(snap.SelectedGame, snap.GameSummaries)
	case TablePlayers:
		meta, err := sheet.ParsePlayerTable(payload, c.cfg.PlayerHints)
		if err != nil {
			return err
		}
		snap.PlayerMeta = meta
	case TableGames:
		meta, err := sheet.ParseGameTable(payload)
		if err != nil {
			return err
		}
		snap.GameMeta = meta
	case TableCampaign:
		log, err := campaign.ParseTable(payload)
		if err != nil {
			return err
		}
		snap.Campaign = log
	}
	return nil
}

func (c *Coordinator) handleSelectGame(cmd SelectGame) error {
	if cmd.Game != stats.AllGames {
		if _, ok := c.state.snapshot.GameSummaries[cmd.Game]; !ok {
			return fmt.Errorf("unknown game %q", cmd.Game)
		}
	}

	if c.state.snapshot.SelectedGame == cmd.Game {
		return nil
	}
	c.state.snapshot.SelectedGame = cmd.Game
	c.state.snapshot.Version++

	c.log.WithField("game", cmd.Game).Info("selection changed")
	c.emit(SelectionChanged{Game: cmd.Game, Version: c.state.snapshot.Version})
	return nil
}

// GetSnapshot returns the current snapshot.
func (c *Coordinator) GetSnapshot() Snapshot {
	respCh := make(chan Snapshot, 1)
	c.commands <- getSnapshotCmd{Response: respCh}
	return <-respCh
}

// SelectGameFilter sets the active game filter and reports whether the game
// was accepted.
func (c *Coordinator) SelectGameFilter(game string) error {
	respCh := make(chan error, 1)
	c.commands <- SelectGame{Game: game, Response: respCh}
	return <-respCh
}

// RequestRefresh queues a reload of the given tables, or of everything when
// none are named. It returns immediately.
func (c *Coordinator) RequestRefresh(tables ...Table) {
	c.commands <- Refresh{Tables: tables}
}
