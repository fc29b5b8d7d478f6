package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/errors"
	"github.com/cristianoliveira/adnow/internal/hooks"
	"github.com/cristianoliveira/adnow/internal/storage"
	"github.com/spf13/cobra"
)

type favoritesClient interface {
	catalogClient
	Persistence() *storage.Store
	Hooks() *hooks.Runner
}

const favoritesCommandLong = `Manage favorite sellers.

USAGE:
    adnow favorites [list]
    adnow favorites add <id>
    adnow favorites remove <id>

Favorites keep the order in which they were added. Adding a favorite twice
or removing one that is not there changes nothing.

Executable scripts in {hooks_dir}/post-favorite-add and
{hooks_dir}/post-favorite-remove run after a change, with SELLER_ID set.`

// favoritesOutput prints confirmations. Replaced in tests.
var favoritesOutput errors.ErrorHandler = errors.NewDefaultCLIHandler()

// NewFavoritesCmd creates the favorites command with explicit dependencies.
func NewFavoritesCmd(client favoritesClient) *cobra.Command {
	if client == nil {
		panic("NewFavoritesCmd: client dependency cannot be nil")
	}

	favoritesCmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite sellers",
		Long:  favoritesCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintFavorites(cmd.Context(), client, cmd.OutOrStdout())
		},
	}

	favoritesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorite sellers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintFavorites(cmd.Context(), client, cmd.OutOrStdout())
		},
	})
	favoritesCmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Add a seller to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSellerID(args[0])
			if err != nil {
				return err
			}
			return AddFavorite(cmd.Context(), client, id)
		},
	})
	favoritesCmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a seller from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSellerID(args[0])
			if err != nil {
				return err
			}
			return RemoveFavorite(cmd.Context(), client, id)
		},
	})

	return favoritesCmd
}

// AddFavorite adds a catalog seller to the favorites set.
func AddFavorite(ctx context.Context, client favoritesClient, id int) error {
	c, err := loadCatalog(ctx, client)
	if err != nil {
		return err
	}
	seller, ok := c.Seller(id)
	if !ok {
		return fmt.Errorf("%w: %d", browser.ErrSellerNotFound, id)
	}
	store := client.Persistence()
	if store.IsFavorite(id) {
		favoritesOutput.Info(fmt.Sprintf("%s is already a favorite", seller.Name))
		return nil
	}
	store.AddFavorite(id)
	favoritesOutput.Success(fmt.Sprintf("Added %s to favorites", seller.Name))
	return client.Hooks().Run(ctx, hooks.PostFavoriteAdd,
		"SELLER_ID="+strconv.Itoa(id),
		"SELLER_NAME="+seller.Name,
	)
}

// RemoveFavorite removes an id from the favorites set. Absent ids are a no-op.
func RemoveFavorite(ctx context.Context, client favoritesClient, id int) error {
	store := client.Persistence()
	if !store.IsFavorite(id) {
		favoritesOutput.Info(fmt.Sprintf("Seller %d is not a favorite", id))
		return nil
	}
	store.RemoveFavorite(id)
	favoritesOutput.Success(fmt.Sprintf("Removed seller %d from favorites", id))
	return client.Hooks().Run(ctx, hooks.PostFavoriteRemove, "SELLER_ID="+strconv.Itoa(id))
}

// PrintFavorites lists favorites in insertion order. Ids missing from the
// catalog are still listed so they can be removed.
func PrintFavorites(ctx context.Context, client favoritesClient, w io.Writer) error {
	ids := client.Persistence().Favorites()
	if len(ids) == 0 {
		_, err := fmt.Fprintln(w, "No favorites yet")
		return err
	}

	c, err := loadCatalog(ctx, client)
	if err != nil {
		colors.Warning(fmt.Sprintf("catalog unavailable, showing ids only: %v", err))
	}
	for _, id := range ids {
		name := "(not in the catalog)"
		if c != nil {
			if s, ok := c.Seller(id); ok {
				name = s.Name + "  " + browser.RatingLabel(s.Rating)
			}
		}
		if _, err := fmt.Fprintf(w, "%-4d  %s\n", id, name); err != nil {
			return err
		}
	}
	return nil
}

func parseSellerID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid seller id: %s", arg)
	}
	return id, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewFavoritesCmd(coreClient))
}
