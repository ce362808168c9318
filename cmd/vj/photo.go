package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vj-go/internal/app"
	"vj-go/internal/model"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage trip photos",
}

var photoAddCmd = &cobra.Command{
	Use:   "add PATH...",
	Short: "Add photo files to the trip",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("AddPhoto", func(a *app.JournalApp) error {
			for _, raw := range args {
				p, err := a.AddPhoto(tripFlag, raw)
				if err != nil {
					return err
				}
				fmt.Printf("Added photo %d taken %s\n", p.ID, p.CaptureDate.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var photoImportCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Add every image in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")
		return withApp("ImportPhotos", func(a *app.JournalApp) error {
			photos, err := a.ImportPhotos(tripFlag, args[0], recursive)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d photo(s)\n", len(photos))
			return nil
		})
	},
}

var photoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the trip's photos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("ListPhotos", func(a *app.JournalApp) error {
			photos, err := a.ListPhotos(tripFlag)
			if err != nil {
				return err
			}
			printPhotos(photos)
			return nil
		})
	},
}

var photoTagCmd = &cobra.Command{
	Use:   "tag ID TAG...",
	Short: "Tag a photo (--remove to untag)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("photo id", args[0])
		if err != nil {
			return err
		}
		remove, _ := cmd.Flags().GetBool("remove")
		return withApp("TagPhoto", func(a *app.JournalApp) error {
			for _, tag := range args[1:] {
				if remove {
					err = a.UntagPhoto(id, tag)
				} else {
					err = a.TagPhoto(id, tag)
				}
				if err != nil {
					return err
				}
			}
			fmt.Printf("Updated tags of photo %d.\n", id)
			return nil
		})
	},
}

var photoNotesCmd = &cobra.Command{
	Use:   "notes ID TEXT",
	Short: "Set a photo's notes",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("photo id", args[0])
		if err != nil {
			return err
		}
		return withApp("SetPhotoNotes", func(a *app.JournalApp) error {
			return a.SetPhotoNotes(id, strings.Join(args[1:], " "))
		})
	},
}

var photoLocationCmd = &cobra.Command{
	Use:   "location ID PLACE",
	Short: "Set where a photo was taken",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("photo id", args[0])
		if err != nil {
			return err
		}
		return withApp("SetPhotoLocation", func(a *app.JournalApp) error {
			return a.SetPhotoLocation(id, strings.Join(args[1:], " "))
		})
	},
}

var photoDateCmd = &cobra.Command{
	Use:   "date ID \"YYYY-MM-DD HH:MM\"",
	Short: "Correct a photo's capture time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("photo id", args[0])
		if err != nil {
			return err
		}
		taken, err := parseDateTime(args[1])
		if err != nil {
			return err
		}
		return withApp("SetPhotoDate", func(a *app.JournalApp) error {
			return a.SetPhotoDate(id, taken)
		})
	},
}

var photoSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find photos by tag, location, notes or date range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var q app.PhotoQuery
		q.Tag, _ = cmd.Flags().GetString("tag")
		q.Location, _ = cmd.Flags().GetString("location")
		q.Notes, _ = cmd.Flags().GetString("notes")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		if from != "" || to != "" {
			var err error
			if q.From, err = parseDateTime(from); err != nil {
				return err
			}
			if q.To, err = parseDateTime(to); err != nil {
				return err
			}
		}
		return withApp("SearchPhotos", func(a *app.JournalApp) error {
			photos, err := a.SearchPhotos(tripFlag, q)
			if err != nil {
				return err
			}
			printPhotos(photos)
			return nil
		})
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a photo from the journal (the file is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("photo id", args[0])
		if err != nil {
			return err
		}
		return withApp("DeletePhoto", func(a *app.JournalApp) error {
			if err := a.DeletePhoto(id); err != nil {
				return err
			}
			fmt.Printf("Deleted photo %d.\n", id)
			return nil
		})
	},
}

func printPhotos(photos []model.Photo) {
	if len(photos) == 0 {
		fmt.Println("No photos found.")
		return
	}
	for _, p := range photos {
		fmt.Printf("%d  %s  %s", p.ID, p.CaptureDate.Format("2006-01-02 15:04"), p.FilePath)
		if p.Location != "" {
			fmt.Printf("  @ %s", p.Location)
		}
		if len(p.Tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(p.Tags, ", "))
		}
		if p.Notes != "" {
			fmt.Printf("  %s", p.Notes)
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.AddCommand(photoAddCmd, photoImportCmd, photoListCmd, photoTagCmd, photoNotesCmd,
		photoLocationCmd, photoDateCmd, photoSearchCmd, photoDeleteCmd)

	photoImportCmd.Flags().BoolP("recursive", "r", false, "Recurse into subdirectories")
	photoTagCmd.Flags().Bool("remove", false, "Remove the tags instead of adding them")
	photoSearchCmd.Flags().String("tag", "", "Exact tag")
	photoSearchCmd.Flags().String("location", "", "Text in the location")
	photoSearchCmd.Flags().String("notes", "", "Text in the notes")
	photoSearchCmd.Flags().String("from", "", "Range start, inclusive")
	photoSearchCmd.Flags().String("to", "", "Range end, inclusive")
}
