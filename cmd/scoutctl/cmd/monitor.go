package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	scout "github.com/woodrim/go-scout"
	"github.com/woodrim/go-scout/pkg/record"
)

var (
	monitorInterval time.Duration
	monitorRecord   string
)

var (
	headerColor = color.New(color.FgHiBlue).SprintfFunc()
	faultColor  = color.New(color.FgRed).SprintfFunc()
	okColor     = color.New(color.FgGreen).SprintfFunc()
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print decoded robot state as telemetry arrives",
	Long: `Connect to the base and periodically print the decoded state snapshot.

With --record the same snapshots are appended to a CBOR log file that can
be replayed offline.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", 500*time.Millisecond, "print interval")
	monitorCmd.Flags().StringVar(&monitorRecord, "record", "", "append snapshots to this CBOR file")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	base, err := openBase()
	if err != nil {
		return err
	}
	defer base.Close()

	var rec *record.Recorder
	if monitorRecord != "" {
		rec, err = record.Create(monitorRecord)
		if err != nil {
			return fmt.Errorf("open recording: %w", err)
		}
		defer rec.Close()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	fmt.Println(headerColor("scout state monitor, Ctrl+C to exit"))
	for {
		select {
		case <-sig:
			if rec != nil {
				fmt.Printf("recorded %d samples to %s\n", rec.Count(), monitorRecord)
			}
			return nil
		case <-ticker.C:
			state := base.GetRobotState()
			printState(state)
			if rec != nil {
				if err := rec.Record(state); err != nil {
					return fmt.Errorf("record sample: %w", err)
				}
			}
		}
	}
}

func printState(s scout.RobotState) {
	fault := okColor("none")
	if s.FaultCode != 0 {
		fault = faultColor("0x%04X", s.FaultCode)
	}
	fmt.Printf("vel %6.3f m/s %6.3f rad/s | mode %d state %d | batt %5.1f V | fault %s\n",
		s.LinearVelocity, s.AngularVelocity, s.ControlMode, s.BaseState, s.BatteryVoltage, fault)
	for i, m := range s.MotorStates {
		fmt.Printf("  motor%d %5.1f A %6d rpm %3d C\n", i+1, m.Current, m.RPM, m.Temperature)
	}
}
