package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/library-lending-go/features/command/addingbook"
	"github.com/AntonStoeckl/library-lending-go/features/command/cancelinghold"
	"github.com/AntonStoeckl/library-lending-go/features/command/checkingoutbook"
	"github.com/AntonStoeckl/library-lending-go/features/command/creatingpatron"
	"github.com/AntonStoeckl/library-lending-go/features/command/placinghold"
	"github.com/AntonStoeckl/library-lending-go/features/command/returningbook"
	"github.com/AntonStoeckl/library-lending-go/features/dailysheet"
	"github.com/AntonStoeckl/library-lending-go/features/dailysheet/expiringholds"
	"github.com/AntonStoeckl/library-lending-go/features/dailysheet/registeringoverduecheckout"
	"github.com/AntonStoeckl/library-lending-go/features/eventhandler/duplicatehold"
	"github.com/AntonStoeckl/library-lending-go/features/eventhandler/patronevents"
	"github.com/AntonStoeckl/library-lending-go/features/query/patronprofile"
	"github.com/AntonStoeckl/library-lending-go/shell"
	"github.com/AntonStoeckl/library-lending-go/shell/config"
	"github.com/AntonStoeckl/library-lending-go/shell/httpapi"
	"github.com/AntonStoeckl/library-lending-go/shell/oteladapters"
	"github.com/AntonStoeckl/library-lending-go/shell/postgresrepo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	replaySince := flag.String("replay-since", "",
		"redeliver journaled events occurred at or after this RFC 3339 instant, then exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := oteladapters.NewSlogBridgeLogger("lendingservice")

	pool, poolErr := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
	if poolErr != nil {
		log.Fatal("Failed to create connection pool, error: ", poolErr)
	}
	defer pool.Close()

	repository, repoErr := postgresrepo.NewRepositoryFromPGXPool(pool, postgresrepo.WithLogger(logger))
	if repoErr != nil {
		log.Fatal("Failed to create repository, error: ", repoErr)
	}

	books := repository.BookStore()
	patrons := repository.PatronStore()
	sheet := repository.DailySheetStore()
	journal := repository.JournalStore()
	profiles := repository.PatronProfileStore()

	bus := shell.NewEventBus(
		shell.WithLogger(logger),
		shell.WithContextualLogger(logger),
		shell.WithJournal(journal),
	)

	cancelHoldHandler := cancelinghold.NewCommandHandler(books, patrons, bus)

	patronevents.NewCoordinator(books, patrons, bus).SubscribeTo(bus)
	duplicatehold.NewCompensation(cancelHoldHandler).SubscribeTo(bus)
	dailysheet.NewProjector(sheet).SubscribeTo(bus)

	if *replaySince != "" {
		since, parseErr := time.Parse(time.RFC3339, *replaySince)
		if parseErr != nil {
			log.Fatal("Failed to parse -replay-since, error: ", parseErr)
		}

		if replayErr := replayJournal(ctx, journal, bus, since); replayErr != nil {
			log.Fatal("Failed to replay the journal, error: ", replayErr)
		}

		logger.Info("journal replay completed", "since", since)

		return
	}

	clock := shell.SystemClock{}

	handlers := httpapi.NewHTTPHandlers(
		creatingpatron.NewCommandHandler(patrons, bus),
		addingbook.NewCommandHandler(books),
		placinghold.NewCommandHandler(books, patrons, bus),
		cancelHoldHandler,
		checkingoutbook.NewCommandHandler(books, patrons, bus),
		returningbook.NewCommandHandler(books, patrons, bus),
		patronprofile.NewQueryHandler(profiles),
		clock,
		httpapi.WithLogger(logger),
		httpapi.WithContextualLogger(logger),
	)

	expiringJob := expiringholds.NewJob(sheet, bus, clock)
	overdueJob := registeringoverduecheckout.NewJob(sheet, bus, clock)

	scheduler := shell.NewDailyScheduler(clock, logger, logger)
	scheduler.AddJob("expiring-holds", asScheduledJob(logger, "expiring-holds", expiringJob.Run))
	scheduler.AddJob("registering-overdue-checkouts",
		asScheduledJob(logger, "registering-overdue-checkouts", overdueJob.Run))

	go scheduler.Start(ctx)

	server := &http.Server{
		Addr:    config.ListenAddr(),
		Handler: httpapi.NewRouter(handlers),
	}

	go func() {
		logger.Info("lending service listening", "addr", server.Addr)

		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server failed", shell.LogAttrError, serveErr.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down lending service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("http server shutdown failed", shell.LogAttrError, shutdownErr.Error())
	}
}

// asScheduledJob adapts a reconciliation run to the scheduler's job signature,
// logging how many rows were reconciled and how many failed.
func asScheduledJob(
	logger shell.Logger,
	name string,
	run func(ctx context.Context) (dailysheet.Result, error),
) shell.ScheduledJob {

	return func(ctx context.Context) error {
		result, runErr := run(ctx)
		if runErr != nil {
			return runErr
		}

		for _, failure := range result.Failures {
			logger.Error(shell.LogMsgDailySheetRowFailed,
				"job", name,
				shell.LogAttrBookID, failure.BookID,
				shell.LogAttrPatronID, failure.PatronID,
				shell.LogAttrError, failure.Err.Error(),
			)
		}

		logger.Info("daily reconciliation completed",
			"job", name,
			"succeeded", result.Succeeded,
			"failed", result.FailedCount(),
		)

		return nil
	}
}

// replayJournal republishes journaled events so subscribers can catch up after
// a handler failure or a fresh read model rebuild. The journal append on the
// publish path conflicts on the event ID and degrades to a no-op, and every
// subscriber applies events idempotently, so redelivery never duplicates state.
func replayJournal(
	ctx context.Context,
	journal postgresrepo.JournalStore,
	bus *shell.EventBus,
	since time.Time,
) error {

	storableEvents, readErr := journal.ReadSince(ctx, since)
	if readErr != nil {
		return readErr
	}

	envelopes, convertErr := shell.EventEnvelopesFrom(storableEvents)
	if convertErr != nil {
		return convertErr
	}

	for _, envelope := range envelopes {
		if publishErr := bus.Publish(ctx, envelope); publishErr != nil {
			return publishErr
		}
	}

	return nil
}
