// trafficgen replays the lab's manual test traffic: a brute-force run
// against the credential service and a scripted exercise of the command
// relay's webhook endpoints. Requests are sequential; the tool exists to
// populate the SIEM with realistic events, not to load-test anything.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "trafficgen",
		Short:        "Generate exercise traffic against the SIEM lab services",
		SilenceUsage: true,
	}

	root.AddCommand(newBruteforceCmd())
	root.AddCommand(newWebhookCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
