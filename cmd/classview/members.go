package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javaide/classview/model"
)

var (
	membersInherited bool
	membersSorted    bool
)

var membersCmd = &cobra.Command{
	Use:   "members <class> [prefix]",
	Short: "Suggest members of a class by name prefix",
	Long: `List the fields and methods of a class whose names start with prefix.

With an empty prefix all fields and methods are listed. Constructors are
offered when the prefix matches the class's simple name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMembers,
}

func init() {
	membersCmd.Flags().BoolVarP(&membersInherited, "inherited", "i", false, "include members inherited from supertypes")
	membersCmd.Flags().BoolVarP(&membersSorted, "sort", "s", false, "rank by kind priority and name instead of declaration order")
}

func runMembers(cmd *cobra.Command, args []string) error {
	c, err := resolveClass(args[0])
	if err != nil {
		return err
	}
	var prefix string
	if len(args) > 1 {
		prefix = args[1]
	}

	var items []model.Item
	if membersInherited {
		items = c.SuggestMembersInHierarchy(prefix)
	} else {
		items = c.SuggestMembers(prefix)
	}
	if membersSorted {
		model.SortItems(items)
	}

	fmt.Fprintf(output, "%-4s %-40s %-24s %s\n", "KIND", "MEMBER", "TYPE", "INSERT")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 90))
	for _, it := range items {
		sel := model.Accept(it, prefix)
		fmt.Fprintf(output, "%-4c %-40s %-24s %s\n", it.KindTag(), it.Label(), it.Description(), sel.Insert)
	}

	fmt.Fprintf(output, "\nTotal: %d members\n", len(items))
	return nil
}
