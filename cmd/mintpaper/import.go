package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undefinedmint/mintpaper"
	"github.com/undefinedmint/mintpaper/content"
)

func newImportCmd(c *cli) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Import markdown posts with YAML front matter into the database",
		Example: `  # Load every .md file under content/blog
  mintpaper import content/blog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := content.LoadDir(args[0])
			if err != nil {
				return c.fail(err, "load posts")
			}
			if dryRun {
				for _, p := range mintpaper.SortPosts(posts) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.PubDatetime.Format("2006-01-02"), p.Slug, p.Title)
				}
				return nil
			}

			store, err := mintpaper.NewStore(c.cfg.DatabasePath)
			if err != nil {
				return c.fail(err, "open store")
			}
			defer store.Close()

			for _, p := range posts {
				if err := store.SavePost(p); err != nil {
					return c.fail(err, "save post "+p.Slug)
				}
				c.log.Debug().Str("slug", p.Slug).Bool("draft", p.Draft).Msg("imported")
			}
			c.log.Info().Int("posts", len(posts)).Str("db", c.cfg.DatabasePath).Msg("import finished")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the posts without writing them")
	return cmd
}
