package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <class>",
	Short: "Display class information",
	Long:  `Display a class's modifiers, supertypes and member counts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	c, err := resolveClass(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Class: %s\n", c.QualifiedName())
	fmt.Fprintf(output, "Simple Name: %s\n", c.SimpleName())
	if pkg := c.PackageName(); pkg != "" {
		fmt.Fprintf(output, "Package: %s\n", pkg)
	}
	fmt.Fprintf(output, "Modifiers: %s\n", c.Modifiers())

	switch {
	case c.SuperclassUnresolved():
		fmt.Fprintf(output, "Superclass: %s (unresolved)\n", c.SuperclassName())
	case c.SuperclassName() != "":
		fmt.Fprintf(output, "Superclass: %s\n", c.SuperclassName())
	default:
		fmt.Fprintf(output, "Superclass: (none)\n")
	}

	if names := c.InterfaceNames(); len(names) > 0 {
		fmt.Fprintf(output, "Interfaces: %s\n", strings.Join(names, ", "))
	}

	var chain []string
	for a := range c.Ancestors() {
		chain = append(chain, a.QualifiedName())
	}
	if len(chain) > 0 {
		fmt.Fprintf(output, "Ancestors: %s\n", strings.Join(chain, " -> "))
	}

	fmt.Fprintf(output, "Interface: %v\n", c.IsInterface())
	fmt.Fprintf(output, "Enum: %v\n", c.IsEnum())
	fmt.Fprintf(output, "Constructors: %d\n", len(c.Constructors()))
	fmt.Fprintf(output, "Fields: %d\n", len(c.Fields()))
	fmt.Fprintf(output, "Methods: %d\n", len(c.Methods()))
	return nil
}
