package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javaide/classview/model"
)

var (
	lookupField     bool
	lookupInherited bool
	lookupOverload  []string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <class> <member>",
	Short: "Look up a method or field by name",
	Long: `Look up a member of a class by exact name.

Methods are searched in the class and then its superclasses; the first
declaration with a matching name wins. Use --args to select an overload
by parameter types. Fields are searched in the class only unless
--inherited is given.

Examples:
  lookup java.lang.String length
  lookup java.lang.String valueOf --args int
  lookup java.lang.Integer MAX_VALUE --field`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVarP(&lookupField, "field", "f", false, "look up a field instead of a method")
	lookupCmd.Flags().BoolVarP(&lookupInherited, "inherited", "i", false, "search supertypes for fields, including interfaces")
	lookupCmd.Flags().StringSliceVar(&lookupOverload, "args", nil, "argument types selecting a method overload; ? matches any type")
}

func runLookup(cmd *cobra.Command, args []string) error {
	c, err := resolveClass(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	if lookupField {
		var (
			f  *model.Field
			ok bool
		)
		if lookupInherited {
			f, ok = c.FindFieldInHierarchy(name)
		} else {
			f, ok = c.FindField(name)
		}
		if !ok {
			fmt.Fprintf(output, "No field '%s' in %s\n", name, c.QualifiedName())
			return nil
		}
		printFieldDetail(f)
		return nil
	}

	var (
		m  *model.Method
		ok bool
	)
	if cmd.Flags().Changed("args") {
		m, ok = c.FindMethodOverload(name, model.ParseTypeRefs(lookupOverload))
	} else {
		m, ok = c.FindMethod(name, nil)
	}
	if !ok {
		fmt.Fprintf(output, "No method '%s' in %s\n", name, c.QualifiedName())
		return nil
	}
	printMethodDetail(m)
	return nil
}

func printFieldDetail(f *model.Field) {
	fmt.Fprintf(output, "Field:\n")
	fmt.Fprintf(output, "  Name: %s\n", f.Name())
	fmt.Fprintf(output, "  Type: %s\n", f.Type())
	fmt.Fprintf(output, "  Modifiers: %s\n", f.Modifiers())
	fmt.Fprintln(output)
}

func printMethodDetail(m *model.Method) {
	fmt.Fprintf(output, "Method:\n")
	fmt.Fprintf(output, "  Name: %s\n", m.Name())
	fmt.Fprintf(output, "  Signature: %s\n", m.Label())
	fmt.Fprintf(output, "  Returns: %s\n", m.ReturnType())
	fmt.Fprintf(output, "  Modifiers: %s\n", m.Modifiers())
	fmt.Fprintf(output, "  Parameters: %d\n", len(m.Params()))
	fmt.Fprintln(output)
}
