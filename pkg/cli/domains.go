package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/getmockd/arbitrary/pkg/arbitrary"
	"github.com/getmockd/arbitrary/pkg/cli/internal/output"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the built-in character domains",
	Args:  cobra.NoArgs,
	RunE:  runDomains,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}

type domainInfo struct {
	Name  string `json:"name"`
	Size  uint64 `json:"size"`
	ASCII int    `json:"ascii"`
}

func runDomains(cmd *cobra.Command, _ []string) error {
	domains := arbitrary.Domains()
	infos := make([]domainInfo, 0, len(domains))
	for name, d := range domains {
		infos = append(infos, domainInfo{Name: name, Size: d.Size(), ASCII: len(d.ASCII())})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), infos)
	}
	tw := output.Table(cmd.OutOrStdout())
	_, _ = fmt.Fprintln(tw, "NAME\tSIZE\tASCII")
	for _, info := range infos {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", info.Name, info.Size, info.ASCII)
	}
	return tw.Flush()
}
