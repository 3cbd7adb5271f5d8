package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironiq/gymtap/internal/config"
	"github.com/ironiq/gymtap/internal/models"
	"github.com/ironiq/gymtap/internal/parser"
	"github.com/ironiq/gymtap/internal/tagsim"
)

// simulateCmd provisions the file-backed tag device. Development tooling,
// hidden from help output.
var simulateCmd = &cobra.Command{
	Use:    "simulate",
	Short:  "Provision the simulated tag device",
	Hidden: true,
}

var simulateWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a compact payload to the tag device",
	Long: `Write a compact payload to the simulated tag device.

Examples:
  gymtap simulate write --machine M1 --machine-type leg-press --next AB12C3
  gymtap simulate write --machine M1 --machine-type leg-press --next XYZ999 \
      --session "last:AB12C3:135x10,135x8"
  gymtap simulate write --machine M1 --machine-type leg-press --next AB12C3 --text --lang en`,
	Run: func(cmd *cobra.Command, args []string) {
		device, _ := cmd.Flags().GetString("device")
		machine, _ := cmd.Flags().GetString("machine")
		machineType, _ := cmd.Flags().GetString("machine-type")
		next, _ := cmd.Flags().GetString("next")
		sessionSpecs, _ := cmd.Flags().GetStringArray("session")
		asText, _ := cmd.Flags().GetBool("text")
		lang, _ := cmd.Flags().GetString("lang")

		if device == "" {
			cfgPath, err := config.DefaultPath()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			device = cfg.TagDevice
		}
		if device == "" {
			fmt.Println("Error: no tag device (pass --device or set tag_device in the config)")
			return
		}

		payload := &models.CompactPayload{
			MachineID:     machine,
			MachineType:   machineType,
			NextSessionID: next,
			Sessions:      []models.SessionEntry{},
		}
		for _, spec := range sessionSpecs {
			entry, err := parser.ParseSessionEntry(spec)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			payload.Sessions = append(payload.Sessions, entry)
		}

		var err error
		if asText {
			err = tagsim.WriteText(device, payload, lang)
		} else {
			err = tagsim.WriteMIME(device, payload)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📝 Wrote tag for machine %s (%s) with %d session(s) to %s\n",
			machine, machineType, len(payload.Sessions), device)
	},
}

func init() {
	simulateWriteCmd.Flags().String("device", "", "Tag device path (default: tag_device from the config)")
	simulateWriteCmd.Flags().String("machine", "M1", "Machine id")
	simulateWriteCmd.Flags().String("machine-type", "leg-press", "Machine type")
	simulateWriteCmd.Flags().String("next", "", "Next session id the tag offers")
	simulateWriteCmd.Flags().StringArray("session", nil, "Session spec role:sessionId[:sets], repeatable")
	simulateWriteCmd.Flags().Bool("text", false, "Frame as a text record instead of MIME JSON")
	simulateWriteCmd.Flags().String("lang", "en", "Language code for text framing")
	simulateWriteCmd.MarkFlagRequired("next")

	simulateCmd.AddCommand(simulateWriteCmd)
}
