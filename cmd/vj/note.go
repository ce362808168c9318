package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vj-go/internal/app"
	"vj-go/internal/model"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage trip notes",
}

var noteTags string

var noteAddCmd = &cobra.Command{
	Use:   "add TITLE CONTENT...",
	Short: "Write a note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("AddNote", func(a *app.JournalApp) error {
			n, err := a.AddNote(tripFlag, args[0], strings.Join(args[1:], " "), splitTags(noteTags))
			if err != nil {
				return err
			}
			fmt.Printf("Added note %d.\n", n.ID)
			return nil
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the trip's notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("ListNotes", func(a *app.JournalApp) error {
			notes, err := a.ListNotes(tripFlag)
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		})
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("note id", args[0])
		if err != nil {
			return err
		}
		return withApp("ShowNote", func(a *app.JournalApp) error {
			n, err := a.GetNote(id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n%s\n", n.Title, n.CreatedDate.Format("2006-01-02 15:04"))
			if len(n.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(n.Tags, ", "))
			}
			fmt.Printf("\n%s\n", n.Content)
			return nil
		})
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a note's title, content or tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("note id", args[0])
		if err != nil {
			return err
		}
		return withApp("UpdateNote", func(a *app.JournalApp) error {
			n, err := a.GetNote(id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				n.Title, _ = flags.GetString("title")
			}
			if flags.Changed("content") {
				n.Content, _ = flags.GetString("content")
			}
			if flags.Changed("tags") {
				n.Tags = splitTags(noteTags)
			}
			if err := a.UpdateNote(id, n.Title, n.Content, n.Tags); err != nil {
				return err
			}
			fmt.Printf("Updated note %d.\n", id)
			return nil
		})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("note id", args[0])
		if err != nil {
			return err
		}
		return withApp("DeleteNote", func(a *app.JournalApp) error {
			if err := a.DeleteNote(id); err != nil {
				return err
			}
			fmt.Printf("Deleted note %d.\n", id)
			return nil
		})
	},
}

var noteSearchCmd = &cobra.Command{
	Use:   "search [TEXT]",
	Short: "Find notes by text or --tag",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")
		text := ""
		if len(args) == 1 {
			text = args[0]
		}
		if text == "" && tag == "" {
			return fmt.Errorf("give search text or --tag")
		}
		return withApp("SearchNotes", func(a *app.JournalApp) error {
			notes, err := a.SearchNotes(tripFlag, text, tag)
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		})
	},
}

func printNotes(notes []model.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return
	}
	for _, n := range notes {
		fmt.Printf("%d  %s  %s", n.ID, n.CreatedDate.Format("2006-01-02 15:04"), n.Title)
		if len(n.Tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(n.Tags, ", "))
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteShowCmd, noteUpdateCmd, noteDeleteCmd, noteSearchCmd)

	noteAddCmd.Flags().StringVar(&noteTags, "tags", "", "Comma-separated tags")
	noteUpdateCmd.Flags().StringVar(&noteTags, "tags", "", "Comma-separated tags, replacing the old ones")
	noteUpdateCmd.Flags().String("title", "", "New title")
	noteUpdateCmd.Flags().String("content", "", "New content")
	noteSearchCmd.Flags().String("tag", "", "Exact tag")
}
