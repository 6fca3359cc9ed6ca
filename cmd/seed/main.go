package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bookvault/bookvault/pkg/binder"
	"github.com/bookvault/bookvault/pkg/books"
	"github.com/bookvault/bookvault/pkg/config"
	"github.com/bookvault/bookvault/pkg/database"
	"github.com/bookvault/bookvault/pkg/migrations"
	"github.com/bookvault/bookvault/pkg/models"
	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
)

var samples = []struct {
	title       string
	author      string
	publishedAt string
}{
	{"Pride and Prejudice", "Jane Austen", "28-01-1813"},
	{"Moby-Dick", "Herman Melville", "18-10-1851"},
	{"Middlemarch", "George Eliot", "01-12-1871"},
	{"The Great Gatsby", "F. Scott Fitzgerald", "10-04-1925"},
	{"Season of Migration to the North", "Tayeb Salih", "01-01-1966"},
	{"Granada", "Radwa Ashour", "01-01-1994"},
	{"The Cairo Trilogy", "Naguib Mahfouz", "01-01-1956"},
}

func main() {
	ctx := context.Background()
	log := logger.New()

	var opts struct {
		Count   int  `short:"n" long:"count" default:"7" description:"Number of books to insert"`
		Trashed int  `short:"t" long:"trashed" default:"0" description:"How many of the inserted books to soft-delete"`
		Verbose bool `short:"v" long:"verbose" description:"Log every query"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.Err(err).Fatal("flags parse error")
	}
	if opts.Count < 0 || opts.Trashed < 0 || opts.Trashed > opts.Count {
		fmt.Println("go run ./cmd/seed --count N [--trashed M] (0 <= M <= N)")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if opts.Verbose {
		ctx = database.WithLogging(ctx)
	}

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	svc := books.NewService(db)
	for i := 0; i < opts.Count; i++ {
		sample := samples[i%len(samples)]
		publishedAt, err := books.NormalizePublishedAt(sample.publishedAt)
		if err != nil {
			log.Err(err).Fatal("invalid sample date")
		}

		book := &models.Book{
			Title:       binder.TitleCase(sample.title),
			Author:      binder.TitleCase(sample.author),
			PublishedAt: publishedAt,
			IsActive:    i%2 == 0,
		}
		if err := svc.CreateBook(ctx, book); err != nil {
			log.Err(err).Fatal("create book error")
		}

		if i < opts.Trashed {
			if err := svc.DeleteBook(ctx, book.ID); err != nil {
				log.Err(err).Fatal("delete book error")
			}
		}

		log.Info("seeded book", logger.Data{"book_id": book.ID, "title": book.Title, "trashed": i < opts.Trashed})
	}
}
