package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndpatients/patients/internal/validation"
)

// canadianProvinces backs the offline province lookup used by "validate".
var canadianProvinces = map[string]bool{
	"AB": true, "BC": true, "MB": true, "NB": true, "NL": true, "NS": true, "NT": true,
	"NU": true, "ON": true, "PE": true, "QC": true, "SK": true, "YT": true,
}

var errInvalidRecord = errors.New("patient record is invalid")

type validateOutput struct {
	Valid  bool                     `json:"valid"`
	Record validation.PatientRecord `json:"record"`
	Errors validation.FieldErrors   `json:"errors"`
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate and normalize a patient JSON file without a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			var in io.Reader = cmd.InOrStdin()
			if path != "" && path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runValidate(in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("file", "f", "", "Patient JSON file (- or empty for stdin)")
	return cmd
}

// runValidate decodes one patient record from r, writes the normalized
// record and its field errors to w as JSON, and returns errInvalidRecord when
// any field failed.
func runValidate(r io.Reader, w io.Writer) error {
	var rec validation.PatientRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return fmt.Errorf("decode patient: %w", err)
	}

	res := validation.ValidatePatientRecord(rec, func(code string) bool {
		return canadianProvinces[code]
	})
	out := validateOutput{Valid: res.Valid(), Record: res.Record, Errors: res.Errors}
	if out.Errors == nil {
		out.Errors = validation.FieldErrors{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !out.Valid {
		return errInvalidRecord
	}
	return nil
}
