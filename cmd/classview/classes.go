package main

import (
	"fmt"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javaide/classview/model"
)

var (
	classesPackage string
	classesPrefix  string
	classesLimit   int
	classesPreload bool
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List classes on the classpath",
	Long: `List the classes visible on the classpath in entry order.

With --prefix the classes whose simple names start with the prefix are
resolved and shown as completion entries with the import each needs.
Anonymous and local classes and classes that fail to resolve are left out.

With --preload every listed class is also resolved, along with its
supertypes, to check that the classpath is complete.

Examples:
  classes --package java.util
  classes --prefix Array --limit 10`,
	Args: cobra.NoArgs,
	RunE: runClasses,
}

func init() {
	classesCmd.Flags().StringVarP(&classesPackage, "package", "p", "", "only list classes in this package and its subpackages")
	classesCmd.Flags().StringVar(&classesPrefix, "prefix", "", "suggest classes whose simple names start with this prefix")
	classesCmd.Flags().IntVarP(&classesLimit, "limit", "n", 0, "maximum number of classes to list (0 for all)")
	classesCmd.Flags().BoolVar(&classesPreload, "preload", false, "resolve every listed class")
}

// packageClasses yields the classpath's classes, restricted to --package.
func packageClasses() iter.Seq[string] {
	return func(yield func(string) bool) {
		for name := range cp.Classes() {
			if classesPackage != "" && !strings.HasPrefix(name, classesPackage+".") {
				continue
			}
			if !yield(name) {
				return
			}
		}
	}
}

func runClasses(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("prefix") {
		return runSuggestClasses()
	}

	var names []string
	for name := range packageClasses() {
		names = append(names, name)
		fmt.Fprintln(output, name)
		if classesLimit > 0 && len(names) >= classesLimit {
			break
		}
	}
	fmt.Fprintf(output, "\nTotal: %d classes\n", len(names))

	if !classesPreload {
		return nil
	}
	if err := registry.Preload(cmd.Context(), names); err != nil {
		return fmt.Errorf("preload failed: %w", err)
	}
	fmt.Fprintf(output, "Resolved: %d classes including supertypes\n", registry.Count())
	return nil
}

func runSuggestClasses() error {
	items := registry.SuggestClasses(packageClasses(), classesPrefix, classesLimit)

	fmt.Fprintf(output, "%-4s %-40s %-24s %s\n", "KIND", "CLASS", "INSERT", "IMPORT")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 90))
	for _, it := range items {
		sel := model.Accept(it, classesPrefix)
		fmt.Fprintf(output, "%-4c %-40s %-24s %s\n", it.KindTag(), it.Label(), sel.Insert, sel.Import)
	}

	fmt.Fprintf(output, "\nTotal: %d classes\n", len(items))
	return nil
}
