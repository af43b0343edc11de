// SPDX-License-Identifier: Apache-2.0

// Package doctor turns provisioning errors into diagnoses an operator can act on.
package doctor

import (
	"fmt"
	"io"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/hashgraph/puf-provisioner/internal/config"
	"github.com/hashgraph/puf-provisioner/pkg/channel"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/hashgraph/puf-provisioner/pkg/provision"
	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

type ErrorDiagnosis struct {
	Step       string   `yaml:"step,omitempty" json:"step,omitempty"`
	Module     string   `yaml:"module,omitempty" json:"module,omitempty"`
	Message    string   `yaml:"message" json:"message"`
	Cause      string   `yaml:"cause,omitempty" json:"cause,omitempty"`
	ErrorType  string   `yaml:"errorType" json:"errorType"`
	Code       int      `yaml:"code" json:"code"`
	Resolution []string `yaml:"steps" json:"steps"`
}

func toErrorCode(err error) int {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument), errorx.IsOfType(err, config.InvalidConfigError):
		return 10400
	case errorx.IsOfType(err, nvstore.AlreadyExists):
		return 10409
	case errorx.IsOfType(err, provision.LockFailed):
		return 10423
	case errorx.IsOfType(err, provision.HardwareUnsupported):
		return 10501
	default:
		if errorx.HasTrait(err, errorx.NotFound()) {
			return 10404
		}
		return 10500
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	if e.Cause() == nil {
		return e.Message(), ""
	}
	return e.Message(), e.Cause().Error()
}

func findResolution(err error) []string {
	switch {
	case errorx.IsOfType(err, config.NotFoundError):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure configuration file %q exists, is correctly formatted and accessible.", arg)}
		}
		return []string{"Ensure configuration file exists and is accessible."}
	case errorx.IsOfType(err, config.InvalidConfigError), errorx.IsOfType(err, errorx.IllegalArgument):
		return []string{"Check store.root and provision.lockDir are absolute paths without '..' segments."}
	case errorx.IsOfType(err, errorx.IllegalFormat):
		return []string{"Ensure provided data is in correct format."}
	case errorx.IsOfType(err, provision.LockFailed):
		return []string{
			"Another process is provisioning the same module.",
			"Wait for it to finish or raise provision.lockTimeout.",
		}
	case errorx.IsOfType(err, provision.HardwareUnsupported):
		return []string{"The module does not support this hardware; remove it from the module set."}
	case errorx.IsOfType(err, provision.ProvisioningFailed), errorx.IsOfType(err, provision.StateCorruption):
		return []string{
			"Inspect the error reports of the module.",
			"If the temporary store is corrupted, remove it to restart provisioning from the first step.",
		}
	case errorx.IsOfType(err, nvstore.IOFailure), errorx.IsOfType(err, nvstore.AccessDenied):
		return []string{"Ensure the NV store root exists and is writable by this process."}
	case errorx.IsOfType(err, module.NotFound):
		return []string{"Check the module name against the registered modules."}
	case errorx.IsOfType(err, channel.QueryFailed):
		return []string{"Provide an answer under provision.answers or run interactively."}
	default:
		return []string{"Check error message for details or contact support."}
	}
}

// Diagnose attempts to find a resolution and provide a human friendly error response.
func Diagnose(ex error) *ErrorDiagnosis {
	msg, cause := toErrorMessage(ex)

	d := &ErrorDiagnosis{
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		Code:       toErrorCode(ex),
		Resolution: findResolution(ex),
	}

	if name, ok := errorx.ExtractProperty(ex, module.NameProperty); ok {
		d.Module = fmt.Sprint(name)
	}

	return d
}

// DiagnoseReport diagnoses every failed step of report, depth first.
func DiagnoseReport(report *automa.Report) []*ErrorDiagnosis {
	if report == nil {
		return nil
	}

	var out []*ErrorDiagnosis
	for _, stepReport := range report.StepReports {
		out = append(out, DiagnoseReport(stepReport)...)
	}

	if report.Status == automa.StatusFailed && report.Error != nil && len(report.StepReports) == 0 {
		d := Diagnose(report.Error)
		d.Step = report.Id
		if name, ok := report.Metadata[provision.MetaModule]; ok {
			d.Module = name
		}
		out = append(out, d)
	}

	return out
}

// CheckReportErr logs a diagnosis for each failed step and returns them.
func CheckReportErr(report *automa.Report) []*ErrorDiagnosis {
	diagnoses := DiagnoseReport(report)
	for _, d := range diagnoses {
		logx.As().Error().
			Str("step", d.Step).
			Str("module", d.Module).
			Str("errorType", d.ErrorType).
			Int("code", d.Code).
			Strs("resolution", d.Resolution).
			Msg(d.Message)
	}
	return diagnoses
}

// Write renders diagnoses as a YAML document.
func Write(w io.Writer, diagnoses []*ErrorDiagnosis) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(diagnoses); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to encode diagnostics")
	}
	return enc.Close()
}
