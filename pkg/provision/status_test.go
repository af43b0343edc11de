// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

var testInfo = module.Info{Name: "widget", Author: "test", Description: "provision test module"}

func newTestStore(t *testing.T) (*nvstore.Store, string) {
	t.Helper()
	root := t.TempDir()
	s, err := nvstore.NewStore(root)
	require.NoError(t, err)
	return s, root
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "unprovisioned", Status(0).String())
	require.Equal(t, "provisioned", Provisioned.String())
	require.Equal(t, "provisioned|disabled", (Provisioned | Disabled).String())
	require.Equal(t, "error", StatusError.String())

	require.False(t, StatusError.Has(Provisioned))
	require.False(t, Status(0).Has(Provisioned))
	require.True(t, (Provisioned | Disabled).Has(Disabled))
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name    string
		present []nvstore.Type
		want    Status
	}{
		{name: "nothing", want: 0},
		{name: "temporary stores only", present: []nvstore.Type{nvstore.TempFile, nvstore.TempDir}, want: 0},
		{name: "final file", present: []nvstore.Type{nvstore.FinalFile}, want: Provisioned},
		{name: "final dir", present: []nvstore.Type{nvstore.FinalDir}, want: Provisioned},
		{name: "disabled file", present: []nvstore.Type{nvstore.DisabledFile}, want: Provisioned | Disabled},
		{name: "disabled dir", present: []nvstore.Type{nvstore.DisabledDir}, want: Provisioned | Disabled},
		{
			name:    "final and disabled",
			present: []nvstore.Type{nvstore.FinalFile, nvstore.DisabledFile},
			want:    Provisioned | Disabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			for _, typ := range tt.present {
				_, err := s.Create(testInfo, typ)
				require.NoError(t, err)
			}

			got, err := Inspect(s, testInfo)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInspect_DisabledImpliesProvisioned(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(testInfo, nvstore.FinalFile)
	require.NoError(t, err)
	status, err := Inspect(s, testInfo)
	require.NoError(t, err)
	require.True(t, status.Has(Provisioned))
	require.False(t, status.Has(Disabled))

	_, err = s.Create(testInfo, nvstore.DisabledFile)
	require.NoError(t, err)
	status, err = Inspect(s, testInfo)
	require.NoError(t, err)
	require.True(t, status.Has(Provisioned))
	require.True(t, status.Has(Disabled))
}

func TestInspect_InvalidName(t *testing.T) {
	s, _ := newTestStore(t)

	status, err := Inspect(s, module.Info{Name: "../escape"})
	require.Error(t, err)
	require.Equal(t, StatusError, status)
	require.True(t, errorx.IsOfType(err, nvstore.PathError))
}

func TestInspect_WrongKindCountsAsAbsent(t *testing.T) {
	s, root := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "final-file", testInfo.Name), 0o700))

	status, err := Inspect(s, testInfo)
	require.NoError(t, err)
	require.Zero(t, status)
}

func TestDeprovision(t *testing.T) {
	s, root := newTestStore(t)

	for _, typ := range []nvstore.Type{nvstore.FinalFile, nvstore.FinalDir, nvstore.DisabledFile, nvstore.TempFile} {
		_, err := s.Create(testInfo, typ)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "final-dir", testInfo.Name, "key"), []byte("k"), 0o600))

	require.NoError(t, Deprovision(s, testInfo))

	require.NoFileExists(t, filepath.Join(root, "final-file", testInfo.Name))
	require.NoDirExists(t, filepath.Join(root, "final-dir", testInfo.Name))
	require.FileExists(t, filepath.Join(root, "disabled-file", testInfo.Name))
	require.FileExists(t, filepath.Join(root, "temp-file", testInfo.Name))

	status, err := Inspect(s, testInfo)
	require.NoError(t, err)
	require.Equal(t, Provisioned|Disabled, status)
}

func TestDeprovision_NothingToRemove(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, Deprovision(s, testInfo))

	status, err := Inspect(s, testInfo)
	require.NoError(t, err)
	require.Zero(t, status)
}

func TestDeprovision_OnlyFinalDir(t *testing.T) {
	s, root := newTestStore(t)
	_, err := s.Create(testInfo, nvstore.FinalDir)
	require.NoError(t, err)

	require.NoError(t, Deprovision(s, testInfo))
	require.NoDirExists(t, filepath.Join(root, "final-dir", testInfo.Name))
}
