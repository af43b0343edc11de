// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"testing"

	"github.com/hashgraph/puf-provisioner/pkg/channel"
	"github.com/hashgraph/puf-provisioner/pkg/module"
	"github.com/hashgraph/puf-provisioner/pkg/nvstore"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestNewContext_RequiresStoreAndChannel(t *testing.T) {
	s, _ := newTestStore(t)
	ch, err := channel.New(func(string) {}, nil)
	require.NoError(t, err)

	_, err = NewContext(testInfo, nil, ch)
	require.True(t, errorx.IsOfType(err, errorx.IllegalArgument))

	_, err = NewContext(testInfo, s, nil)
	require.True(t, errorx.IsOfType(err, errorx.IllegalArgument))
}

func TestContext_BindsModule(t *testing.T) {
	s, _ := newTestStore(t)

	var lines []string
	ch, err := channel.New(func(line string) { lines = append(lines, line) },
		channel.AnswersQueryHandler(map[string]string{"colour": "blue"}))
	require.NoError(t, err)

	ctx, err := NewContext(testInfo, s, ch)
	require.NoError(t, err)
	require.Equal(t, testInfo, ctx.Module())
	require.Same(t, s, ctx.Store())
	require.Same(t, ch, ctx.Channel())
	require.NotNil(t, ctx.Logger())

	p, err := ctx.CreateStore(nvstore.TempFile)
	require.NoError(t, err)

	got, err := ctx.GetStore(nvstore.TempFile)
	require.NoError(t, err)
	require.Equal(t, p, got)

	require.NoError(t, ctx.WriteStore(nvstore.TempFile, []byte("state")))
	b, err := ctx.ReadStore(nvstore.TempFile)
	require.NoError(t, err)
	require.Equal(t, "state", string(b))

	require.NoError(t, ctx.DeleteStore(nvstore.TempFile))
	_, err = ctx.GetStore(nvstore.TempFile)
	require.True(t, nvstore.IsAbsent(err))

	ctx.Report(channel.LevelInfo, "hello")
	ctx.Reportf(channel.LevelWarn, "%d left", 2)
	ctx.Perror(errorx.IllegalState.New("bad"))

	answer, err := ctx.QueryString("colour", "Favourite colour: ", 16)
	require.NoError(t, err)
	require.Equal(t, "blue", answer)

	buf := make([]byte, 3)
	n, err := ctx.Query("colour", "Favourite colour: ", buf)
	require.NoError(t, err)
	require.Equal(t, "bl", string(buf[:n]))

	require.NoError(t, ctx.Err())
	require.Equal(t, module.Error, ctx.Fail(StateCorruption.New("corrupt")))
	require.True(t, errorx.IsOfType(ctx.Err(), StateCorruption))

	require.Len(t, lines, 3)
	require.Equal(t, "info (widget): hello", lines[0])
	require.Equal(t, "warn (widget): 2 left", lines[1])
	require.Contains(t, lines[2], "error (widget): ")
	require.Contains(t, lines[2], "bad")
}
