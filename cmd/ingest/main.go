package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chatpdf/internal/config"
	"chatpdf/internal/domain"
	"chatpdf/internal/ingest"
	"chatpdf/internal/logging"
	"chatpdf/internal/provider"
	"chatpdf/internal/splitter"
	"chatpdf/internal/vectorstore/pgvector"
)

const (
	chunkSize    = 1000
	chunkOverlap = 150
)

func main() {
	_ = godotenv.Load()

	providerFlag := flag.String("provider", "", "LLM provider: 'google' or 'openai' (default google)")
	pathFlag := flag.String("path", "", "path to the PDF file (default document.pdf)")
	collectionFlag := flag.String("collection", "", "target collection name (default documentos_pdf)")
	cfgPath := flag.String("config", "config.yaml", "path to an optional YAML defaults file")
	var verbose bool
	flag.BoolVar(&verbose, "verbose", false, "enable verbose logging")
	flag.BoolVar(&verbose, "v", false, "enable verbose logging (shorthand)")
	flag.Parse()

	fileCfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	providerName := pick(*providerFlag, fileCfg.Provider, "google")
	path := pick(*pathFlag, fileCfg.Path, "document.pdf")
	collection := pick(*collectionFlag, fileCfg.Collection, "documentos_pdf")
	verbose = verbose || fileCfg.Verbose

	log := logging.New(verbose)
	defer log.Sync()

	p, err := domain.ParseProvider(providerName)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(p); err != nil {
		fmt.Printf("Erro de configuração: %v\n", err)
		return
	}

	ctx := context.Background()

	// Assemble components
	embedder, err := provider.NewEmbedder(ctx, p, cfg, log)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	store, err := pgvector.Connect(ctx, pgvector.Config{
		ConnString: cfg.ConnString(),
		Collection: collection,
	}, log)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	defer store.Close()

	ing := ingest.New(embedder, store, splitter.NewRecursiveCharacter(chunkSize, chunkOverlap), log)
	stats, err := ing.Run(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("Erro: O arquivo '%s' não foi encontrado.\n", path)
			return
		}
		fmt.Printf("Ocorreu um erro durante a ingestão: %v\n", err)
		return
	}
	log.Info("ingestion finished",
		zap.Int("pages", stats.Pages),
		zap.Int("chunks", stats.Chunks),
		zap.Int("tokens", stats.Tokens),
	)

	fmt.Println("\nProcesso de ingestão concluído com sucesso!")
}

func pick(flagValue, fileValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}
