package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdn-platform/p4ir/ir"
)

var codecCmd struct {
	Format   string
	Bitwidth int
}

var decodeCmd = &cobra.Command{
	Use:   "decode <pi-bytes>",
	Short: "Render a PI byte string (hex) as a typed IR value",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		format, err := ir.ParseFormat(codecCmd.Format)
		if err != nil {
			return err
		}
		pi, err := parseHexBytes(args[0])
		if err != nil {
			return err
		}

		value, err := ir.FormatByteString(format, codecCmd.Bitwidth, pi)
		if err != nil {
			return err
		}
		log.Debugw("decoded PI byte string", "format", format, "bitwidth", codecCmd.Bitwidth)
		fmt.Println(value.Text())
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode <ir-value>",
	Short: "Convert a typed IR value back into a PI byte string",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		format, err := ir.ParseFormat(codecCmd.Format)
		if err != nil {
			return err
		}
		value, err := ir.NewValue(args[0], format)
		if err != nil {
			return err
		}

		pi, err := value.NormalizedByteString(codecCmd.Bitwidth)
		if err != nil {
			return err
		}
		log.Debugw("encoded IR value", "format", format, "bitwidth", codecCmd.Bitwidth)
		fmt.Printf("0x%x\n", pi)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{decodeCmd, encodeCmd} {
		cmd.Flags().StringVarP(&codecCmd.Format, "format", "f", "", "Value format: MAC, IPV4, IPV6, HEX_STRING or STRING (required)")
		cmd.Flags().IntVarP(&codecCmd.Bitwidth, "bitwidth", "b", 0, "Declared bit-width of the field (required)")
		cmd.MarkFlagRequired("format")
		cmd.MarkFlagRequired("bitwidth")
		rootCmd.AddCommand(cmd)
	}
}
