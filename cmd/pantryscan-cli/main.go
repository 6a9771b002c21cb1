// Command pantryscan-cli scrapes a single product page interactively:
// it prompts for a URL, runs one scrape, and prints the record. A failed
// scrape prints the error and exits non-zero with no partial record.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pantry-scan/pantryscan/config"
	"github.com/pantry-scan/pantryscan/logging"
	"github.com/pantry-scan/pantryscan/models"
	"github.com/pantry-scan/pantryscan/scraper"
	"github.com/pantry-scan/pantryscan/traderjoes"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log)

	url := readURL()
	if url == "" {
		fmt.Fprintln(os.Stderr, "no URL given")
		os.Exit(2)
	}

	sc, err := scraper.New(cfg.Browser, cfg.Scraper)
	if err != nil {
		slog.Error("failed to initialise scraper", "error", err)
		fmt.Fprintln(os.Stderr, "scrape failed:", err)
		os.Exit(1)
	}
	defer sc.Close()

	tj := traderjoes.New(sc)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Scraper.MaxTimeout)
	defer cancel()

	product, err := tj.Scrape(ctx, url, cfg.Scraper.DefaultTimeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scrape failed:", err)
		os.Exit(1)
	}

	printProduct(product)
}

// readURL takes the URL from the first CLI argument, or prompts for it.
func readURL() string {
	if len(os.Args) > 1 {
		return strings.TrimSpace(os.Args[1])
	}
	fmt.Print("Product URL: ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printProduct(p *models.Product) {
	fmt.Println()
	fmt.Println("Product: ", orNone(p.Name))
	fmt.Println("Brand:   ", orNone(p.Brand))
	fmt.Println("Price:   ", orNone(p.Price))
	fmt.Println("URL:     ", p.URL)

	if p.Description != "" {
		fmt.Println("Description:")
		fmt.Println(" ", p.Description)
	}

	fmt.Println("Ingredients:")
	if len(p.Ingredients) == 0 {
		fmt.Println("  (none found)")
	}
	for _, ing := range p.Ingredients {
		fmt.Println("  -", ing)
	}

	if len(p.Allergens) > 0 {
		fmt.Println("Allergens:")
		for _, a := range p.Allergens {
			fmt.Println("  -", a)
		}
	}

	if len(p.NutritionFacts) > 0 {
		fmt.Println("Nutrition Facts:")
		for label, value := range p.NutritionFacts {
			fmt.Printf("  %-24s %s\n", label+":", value)
		}
	}

	fmt.Printf("\nscraped in %s\n", p.ScrapeDuration.Round(time.Millisecond))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
