package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"chatpdf/internal/chat"
	"chatpdf/internal/config"
	"chatpdf/internal/domain"
	"chatpdf/internal/logging"
	"chatpdf/internal/search"
)

var dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

func main() {
	_ = godotenv.Load()

	providerFlag := flag.String("provider", "", "LLM provider: 'google' or 'openai' (default google)")
	query := flag.String("query", "qualquer coisa", "search query")
	collectionFlag := flag.String("collection", "", "collection name (default documentos_pdf)")
	kFlag := flag.Int("k", 0, "number of results (default 10)")
	cfgPath := flag.String("config", "config.yaml", "path to an optional YAML defaults file")
	var verbose bool
	flag.BoolVar(&verbose, "verbose", false, "enable verbose logging")
	flag.BoolVar(&verbose, "v", false, "enable verbose logging (shorthand)")
	flag.Parse()

	kSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "k" {
			kSet = true
		}
	})

	fileCfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	providerName := pick(*providerFlag, fileCfg.Provider, "google")
	collection := pick(*collectionFlag, fileCfg.Collection, "documentos_pdf")
	k := chat.DefaultTopK
	if fileCfg.TopK > 0 {
		k = fileCfg.TopK
	}
	if kSet {
		k = *kFlag
	}
	verbose = verbose || fileCfg.Verbose

	log := logging.New(verbose)
	defer log.Sync()

	p, err := domain.ParseProvider(providerName)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}

	fmt.Printf("--- Busca em documentos (provedor: %s) ---\n", p)

	searcher, err := search.Open(context.Background(), config.FromEnv(), p, collection, log)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	defer searcher.Close()

	results, err := searcher.Search(context.Background(), *query, k)
	if err != nil {
		fmt.Printf("\nOcorreu um erro inesperado durante a busca: %v\n", err)
		return
	}
	if len(results) == 0 {
		fmt.Println("Nenhum resultado encontrado.")
		return
	}

	divider := dividerStyle.Render(strings.Repeat("-", 50))
	for _, r := range results {
		fmt.Println(divider)
		fmt.Printf("Score: %.4f\n", r.Score)
		fmt.Printf("Conteúdo: %s...\n", preview(r.Text, 200))
		fmt.Printf("Fonte: %s, Página: %d\n", r.Source, r.Page)
		fmt.Println(divider)
	}
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit])
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
