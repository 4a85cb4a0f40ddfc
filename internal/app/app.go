package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/matchdayhq/matchday/internal/config"
	"github.com/matchdayhq/matchday/internal/domain/attendance"
	"github.com/matchdayhq/matchday/internal/domain/guest"
	"github.com/matchdayhq/matchday/internal/domain/ledger"
	"github.com/matchdayhq/matchday/internal/domain/lineup"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/roster"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
	"github.com/matchdayhq/matchday/internal/domain/vote"
	"github.com/matchdayhq/matchday/internal/infrastructure/account/gatekeeper"
	cacherepo "github.com/matchdayhq/matchday/internal/infrastructure/repository/cache"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/postgres"
	"github.com/matchdayhq/matchday/internal/interfaces/httpapi"
	basecache "github.com/matchdayhq/matchday/internal/platform/cache"
	idgen "github.com/matchdayhq/matchday/internal/platform/id"
	"github.com/matchdayhq/matchday/internal/platform/logging"
	"github.com/matchdayhq/matchday/internal/platform/resilience"
	"github.com/matchdayhq/matchday/internal/usecase"
)

type repositories struct {
	roster       roster.Repository
	guest        guest.Repository
	match        match.Repository
	lineup       lineup.Repository
	substitution substitution.Repository
	vote         vote.Repository
	ledger       ledger.Repository
	attendance   attendance.Repository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeStorage, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	rosterSvc := usecase.NewRosterService(repos.roster, repos.guest, repos.match)
	matchSvc := usecase.NewMatchService(repos.match, repos.roster, repos.lineup, repos.substitution, rosterSvc, idgen.NewRandomGenerator())
	lineupSvc := usecase.NewLineupService(repos.match, repos.lineup, repos.attendance, rosterSvc)
	substitutionSvc := usecase.NewSubstitutionService(repos.match, repos.lineup, repos.substitution, repos.attendance, rosterSvc)
	votingSvc := usecase.NewVotingService(
		repos.match,
		repos.lineup,
		repos.substitution,
		repos.vote,
		repos.ledger,
		usecase.VotingRules{
			WindowDays:     cfg.VotingWindowDays,
			Rewards:        cfg.VotingRewards,
			InitialCredits: cfg.InitialCredits,
		},
		logger,
	)
	dashboardSvc := usecase.NewDashboardService(repos.match, repos.roster, repos.ledger)

	gatekeeperClient := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		cfg.GatekeeperAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMaxRq,
		},
		logger,
	)

	handler := httpapi.NewHandler(rosterSvc, matchSvc, lineupSvc, substitutionSvc, votingSvc, dashboardSvc, logger)
	router := httpapi.NewRouter(handler, gatekeeperClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	server.RegisterOnShutdown(func() {
		if err := closeStorage(); err != nil {
			logger.Error("close storage", "error", err)
		}
	})

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage configured", "driver", config.StorageMemory)
		return repositories{
			roster:       memory.NewRosterRepository(memory.SeedMembers()),
			guest:        memory.NewGuestRepository(),
			match:        memory.NewMatchRepository(memory.SeedMatches()),
			lineup:       memory.NewLineupRepository(),
			substitution: memory.NewSubstitutionRepository(),
			vote:         memory.NewVoteRepository(),
			ledger:       memory.NewLedgerRepository(),
			attendance:   memory.NewAttendanceRepository(),
		}, func() error { return nil }, nil
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("storage configured", "driver", config.StoragePostgres, "db", dbNameFromURL(cfg.DBURL))
		// Roster and guest reads sit on every pool resolution, so they go
		// through the read-through cache. Lineup and substitution state must
		// always reload fresh and stays uncached.
		store := basecache.NewStore(cfg.CacheTTL)
		return repositories{
			roster:       cacherepo.NewRosterRepository(postgres.NewRosterRepository(db), store),
			guest:        cacherepo.NewGuestRepository(postgres.NewGuestRepository(db), store),
			match:        postgres.NewMatchRepository(db),
			lineup:       postgres.NewLineupRepository(db),
			substitution: postgres.NewSubstitutionRepository(db),
			vote:         postgres.NewVoteRepository(db),
			ledger:       postgres.NewLedgerRepository(db),
			attendance:   postgres.NewAttendanceRepository(db),
		}, db.Close, nil
	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
