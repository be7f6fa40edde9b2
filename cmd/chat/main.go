package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"chatpdf/internal/chat"
	"chatpdf/internal/config"
	"chatpdf/internal/domain"
	"chatpdf/internal/logging"
	"chatpdf/internal/provider"
	"chatpdf/internal/search"
	"chatpdf/internal/tui"
)

func main() {
	_ = godotenv.Load()

	providerFlag := flag.String("provider", "", "LLM provider: 'google' or 'openai' (default google)")
	useTUI := flag.Bool("tui", false, "run the full-screen interface")
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
	collection := "documentos_pdf"
	if fileCfg.Collection != "" {
		collection = fileCfg.Collection
	}
	topK := chat.DefaultTopK
	if fileCfg.TopK > 0 {
		topK = fileCfg.TopK
	}
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
	searcher, err := search.Open(ctx, cfg, p, collection, log)
	if err != nil {
		fmt.Printf("Erro na inicialização: %v\n", err)
		return
	}
	defer searcher.Close()

	model, err := provider.NewChatModel(ctx, p, cfg, log)
	if err != nil {
		fmt.Printf("Erro na inicialização: %v\n", err)
		return
	}

	session := chat.NewSession(searcher, model, topK, log)

	if *useTUI {
		if _, err := tea.NewProgram(tui.New(session, string(p))).Run(); err != nil {
			fmt.Printf("Erro: %v\n", err)
		}
		return
	}

	fmt.Printf("--- Chat com Documento PDF (Provedor: %s) ---\n", p)
	fmt.Println("Digite sua pergunta ou 'sair' para terminar.")
	if err := session.Run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Printf("\nOcorreu um erro durante o chat: %v\n", err)
	}
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
