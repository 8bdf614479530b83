package commands

import (
	"errors"
	"fmt"

	"fitlaunch/internal/fitnesse"

	"github.com/spf13/cobra"
)

// ClasspathCommand handles the classpath command
type ClasspathCommand struct {
	*deps
}

// Execute runs the command
func (cc *ClasspathCommand) Execute(cmd *cobra.Command, args []string) error {
	classpath := cc.config.Classpath
	if len(args) > 0 {
		classpath = args[0]
	}
	if classpath == "" {
		return errors.New("no classpath given: pass one as argument, --classpath or FITLAUNCH_CLASSPATH")
	}

	fmt.Fprint(cmd.OutOrStdout(), fitnesse.NewClasspathFormatter(cc.logger).Format(classpath))
	return nil
}
