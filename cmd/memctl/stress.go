package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/fixedstr"
	"github.com/joshuapare/memkit/mem"
	"github.com/joshuapare/memkit/mem/track"
	"github.com/joshuapare/memkit/unmanaged"
)

var (
	stressRounds int
	stressItems  int
	stressLeak   bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressRounds, "rounds", 10, "Number of workload rounds")
	cmd.Flags().IntVar(&stressItems, "items", 1000, "Items per container per round")
	cmd.Flags().BoolVar(&stressLeak, "leak", false, "Deliberately leak one block to demonstrate the audit")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run container workloads and audit the registry for leaks",
		Long: `The stress command runs repeated workloads against the unmanaged
containers (array, list, dictionary, fixed strings), then audits the
allocation registry. A clean run frees everything it allocated and the
audit passes; with --leak one block is left behind so the failure path
can be observed.

Example:
  memctl stress
  memctl stress --rounds 100 --items 5000
  memctl stress --leak`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

type stressReport struct {
	Rounds     int
	Items      int
	Duration   string
	LiveBefore int
	LiveAfter  int
	AuditClean bool
}

func runStress() error {
	reg := track.Default()
	report := stressReport{
		Rounds:     stressRounds,
		Items:      stressItems,
		LiveBefore: reg.Count(),
	}

	start := time.Now()
	for round := 0; round < stressRounds; round++ {
		printVerbose("round %d/%d\n", round+1, stressRounds)
		if err := stressRound(stressItems); err != nil {
			return fmt.Errorf("round %d failed: %w", round+1, err)
		}
	}
	report.Duration = time.Since(start).String()

	if stressLeak {
		// One 8-byte block, never freed. The audit below must name it.
		if _, err := mem.Alloc(8); err != nil {
			return err
		}
		printVerbose("leaked one 8-byte block\n")
	}

	report.LiveAfter = reg.Count()

	err := mem.Shutdown()
	report.AuditClean = err == nil

	if jsonOut {
		if jerr := printJSON(report); jerr != nil {
			return jerr
		}
	} else {
		printInfo("Stress run: %d rounds x %d items in %s\n",
			report.Rounds, report.Items, report.Duration)
		printInfo("  Live allocations before: %d\n", report.LiveBefore)
		printInfo("  Live allocations after:  %d\n", report.LiveAfter)
	}

	if err != nil {
		var leaks *track.LeakError
		if errors.As(err, &leaks) {
			fmt.Fprintf(os.Stderr, "leak audit failed: %d block(s) still live\n", len(leaks.Leaks))
			for _, rec := range leaks.Leaks {
				fmt.Fprintf(os.Stderr, "  %d bytes at 0x%x, allocated at %s\n",
					rec.Size, rec.Addr, rec.AllocatedAt.ShortString())
			}
		}
		return err
	}

	printInfo("  Leak audit: clean\n")
	return nil
}

// stressRound allocates, fills, mutates, and frees one instance of each
// container kind.
func stressRound(items int) error {
	arr, err := unmanaged.NewArray[int64](items)
	if err != nil {
		return err
	}
	for i := 0; i < items; i++ {
		arr.Set(i, int64(i))
	}
	if err := arr.Resize(items*2, true); err != nil {
		return err
	}
	if err := arr.Free(); err != nil {
		return err
	}

	list, err := unmanaged.NewList[int64](4)
	if err != nil {
		return err
	}
	for i := 0; i < items; i++ {
		if err := list.Add(int64(i)); err != nil {
			return err
		}
	}
	for list.Count() > 0 {
		list.RemoveAtSwapBack(0)
	}
	if err := list.Free(); err != nil {
		return err
	}

	dict, err := unmanaged.NewDictionary[uint64, uint64](0)
	if err != nil {
		return err
	}
	for i := 0; i < items; i++ {
		if err := dict.Add(uint64(i), uint64(i)*3); err != nil {
			return err
		}
	}
	for i := 0; i < items; i += 2 {
		if err := dict.Remove(uint64(i)); err != nil {
			return err
		}
	}
	if err := dict.Free(); err != nil {
		return err
	}

	s, err := fixedstr.NewUtf16(64)
	if err != nil {
		return err
	}
	if err := s.Set("stress workload payload"); err != nil {
		return err
	}
	if err := s.Free(); err != nil {
		return err
	}

	return nil
}
