// Command cartcli drives a session cart from the terminal. It keeps guest
// lines in a local JSON slot and, given an access token, syncs against the
// marketplace API the way the storefront does.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"agrihub/internal/cart"
	"agrihub/internal/config"
	"agrihub/internal/domain"
)

func main() {
	var (
		apiURL string
		token  string
		userID string
	)
	flag.StringVar(&apiURL, "api", "http://localhost:8080", "API base URL")
	flag.StringVar(&token, "token", "", "Access token; empty runs a guest session")
	flag.StringVar(&userID, "user", "", "User id matching the token")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	slotPath := cfg.CartStoragePath
	if slotPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("resolve home dir: %v", err)
		}
		slotPath = filepath.Join(home, ".agrihub", "cart.json")
	}

	logger := log.New(os.Stderr, "[cart] ", log.LstdFlags)
	store := cart.New(cart.NewFileSlot(slotPath), cart.NewHTTPRemote(apiURL, token), logger)
	if token != "" && userID != "" {
		store.SignIn(context.Background(), userID)
	}

	if err := run(store, apiURL, flag.Args()); err != nil {
		log.Fatalf("%v", err)
	}
	store.Flush()
}

func run(store *cart.Store, apiURL string, args []string) error {
	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("add needs a product id")
		}
		p, err := fetchProduct(apiURL, args[1])
		if err != nil {
			return fmt.Errorf("fetch product: %w", err)
		}
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		store.AddItem(cart.Item{
			ProductID: &p.ID,
			Snapshot: domain.LineSnapshot{
				Title:      p.Title,
				Unit:       p.Unit,
				Location:   p.Location,
				Image:      image,
				PriceCents: p.PriceCents,
				IsOrganic:  p.IsOrganic,
			},
		})
		return nil
	case "show":
		for _, it := range store.Items() {
			ref := "-"
			if it.ProductID != nil {
				ref = *it.ProductID
			}
			fmt.Printf("%s  x%d  %s  %d.%02d  [%s]\n",
				it.ID, it.Quantity, it.Snapshot.Title,
				it.TotalCents()/100, it.TotalCents()%100, ref)
		}
		fmt.Printf("%d items, total %d.%02d\n",
			store.TotalItems(), store.TotalPriceCents()/100, store.TotalPriceCents()%100)
		return nil
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("remove needs a line id")
		}
		store.RemoveItem(args[1])
		return nil
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("set needs a line id and a quantity")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[2])
		}
		store.UpdateQuantity(args[1], qty)
		return nil
	case "clear":
		store.ClearCart()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func fetchProduct(apiURL, id string) (*domain.Product, error) {
	resp, err := http.Get(apiURL + "/api/products/" + url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	var p domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cartcli [flags] <command>

commands:
  add <productId> add one of a catalog product
  show            print the cart lines and totals
  remove <id>     drop a line
  set <id> <qty>  change a line quantity (0 removes)
  clear           empty the cart`)
	flag.PrintDefaults()
}
