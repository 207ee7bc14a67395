package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	grocerchat "grocer/cmd/grocer/chat"
	"grocer/internal/chat"
	"grocer/internal/config"
	"grocer/internal/grocery"
	"grocer/internal/store"
)

var (
	// Global flags
	verbose    bool
	dataDir    string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "grocer",
	Short: "grocer - personal grocery assistant",
	Long: `grocer manages a personal grocery list with a categorized catalog,
purchase history and derived suggestions: items you probably ran out of,
healthier substitutes, and expiry reminders.

Run without arguments to start the interactive chat interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch interactive chat
		assistant, cfg, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()
		return grocerchat.Run(assistant, cfg, logger)
	},
}

// listCmd prints the current grocery list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the current grocery list",
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		items := assistant.Items()
		if len(items) == 0 {
			fmt.Println("Your grocery list is empty.")
			return nil
		}
		for _, item := range items {
			line := "- " + item.Name
			if item.Quantity != "" {
				line += " x" + item.Quantity
			}
			if item.Unit != "" {
				line += " (" + item.Unit + ")"
			}
			if item.Category != "" {
				line += " [" + item.Category + "]"
			}
			if item.ExpiryDate != nil {
				line += " expires " + item.ExpiryDate.String()
			}
			fmt.Println(line)
		}
		return nil
	},
}

var (
	addQuantity string
	addUnit     string
	addCategory string
	addExpires  string
)

// addCmd appends an item to the list
var addCmd = &cobra.Command{
	Use:   "add [item name]",
	Short: "Add an item to the grocery list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		item := grocery.Item{
			Name:     strings.Join(args, " "),
			Quantity: addQuantity,
			Unit:     addUnit,
			Category: addCategory,
		}
		if addExpires != "" {
			expiry, err := grocery.ParseDate(addExpires)
			if err != nil {
				return err
			}
			item.ExpiryDate = &expiry
		}

		stored, err := assistant.Add(item)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s to your list.\n", stored.Name)
		return nil
	},
}

// removeCmd removes items by name
var removeCmd = &cobra.Command{
	Use:   "remove [item name]",
	Short: "Remove an item from the grocery list (case-insensitive)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		name := strings.Join(args, " ")
		removed, err := assistant.Remove(name)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("Couldn't find %s in your list.\n", name)
			return nil
		}
		fmt.Printf("Removed %s from your list.\n", name)
		return nil
	},
}

// categoriesCmd browses the catalog
var categoriesCmd = &cobra.Command{
	Use:   "categories [category]",
	Short: "Browse the category catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		if len(args) == 1 {
			items := assistant.CategoryItems(args[0])
			if len(items) == 0 {
				fmt.Printf("No catalog entries for %s.\n", args[0])
				return nil
			}
			for _, item := range items {
				fmt.Println("- " + item)
			}
			return nil
		}

		catalog := assistant.Categories()
		if len(catalog) == 0 {
			fmt.Println("The catalog is empty.")
			return nil
		}
		names := make([]string, 0, len(catalog))
		for name := range catalog {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %s\n", name, strings.Join(catalog[name], ", "))
		}
		return nil
	},
}

// suggestCmd prints missing-item and healthier-alternative suggestions
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show missing-item and healthier-alternative suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		missing := assistant.MissingItems()
		healthier := assistant.HealthierAlternatives()
		if len(missing) == 0 && len(healthier) == 0 {
			fmt.Println("No suggestions right now.")
			return nil
		}
		for _, s := range missing {
			fmt.Println(s)
		}
		for _, s := range healthier {
			fmt.Println(s)
		}
		return nil
	},
}

// expiringCmd prints expiry reminders
var expiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "Show items expiring soon",
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		reminders := assistant.ExpiryReminders()
		if len(reminders) == 0 {
			fmt.Println("No items expiring soon.")
			return nil
		}
		for _, r := range reminders {
			fmt.Println(r)
		}
		return nil
	},
}

// purchaseCmd closes out the list into the purchase history
var purchaseCmd = &cobra.Command{
	Use:   "purchase",
	Short: "Mark all listed items as purchased and clear the list",
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		status, err := assistant.MarkPurchased()
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}

// askCmd runs one chat round trip without the TUI
var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one chat message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := buildAssistant()
		if err != nil {
			return err
		}
		defer assistant.Close()

		bot := chat.NewBot(assistant)
		resp := bot.Reply(strings.Join(args, " "))
		fmt.Println(resp.Reply)
		return nil
	},
}

// buildAssistant loads config, opens the configured store and constructs the
// assistant service.
func buildAssistant() (*grocery.Assistant, *config.Config, error) {
	path := configPath
	if path == "" {
		base := dataDir
		if base == "" {
			base = config.DefaultConfig().DataDir
		}
		path = filepath.Join(base, "config.yaml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	var st grocery.Store
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		st, err = store.NewSQLiteStore(cfg.StorePath(), logger)
	default:
		st, err = store.NewJSONStore(cfg.DataDir, logger)
	}
	if err != nil {
		return nil, nil, err
	}

	assistant, err := grocery.New(st, logger,
		grocery.WithRepurchaseAfterDays(cfg.Suggestions.RepurchaseAfterDays),
		grocery.WithExpiryWindowDays(cfg.Suggestions.ExpiryWindowDays))
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return assistant, cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.grocer)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <data-dir>/config.yaml)")

	addCmd.Flags().StringVar(&addQuantity, "quantity", "", "quantity, e.g. 2 or 1.5")
	addCmd.Flags().StringVar(&addUnit, "unit", "pcs", "unit of measurement")
	addCmd.Flags().StringVar(&addCategory, "category", "", "target category")
	addCmd.Flags().StringVar(&addExpires, "expires", "", "expiry date (YYYY-MM-DD)")

	rootCmd.AddCommand(listCmd, addCmd, removeCmd, categoriesCmd, suggestCmd, expiringCmd, purchaseCmd, askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
