// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"context"
	"testing"

	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matrixorigin/mopattern/pkg/common/moerr"
)

func TestLogConfig_getter(t *testing.T) {
	type fields struct {
		Level      string
		Format     string
		Filename   string
		MaxSize    int
		MaxDays    int
		MaxBackups int

		Entry zapcore.Entry
	}
	tests := []struct {
		name        string
		fields      fields
		wantLevel   zap.AtomicLevel
		wantOpts    []zap.Option
		wantSyncer  zapcore.WriteSyncer
		wantEncoder zapcore.Encoder
		wantSinks   []ZapSink
	}{
		{
			name: "console",
			fields: fields{
				Level:  "debug",
				Format: "console",
				Entry:  zapcore.Entry{Level: zapcore.DebugLevel, Message: "console msg"},
			},
			wantLevel:   zap.NewAtomicLevelAt(zap.DebugLevel),
			wantOpts:    []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()},
			wantSyncer:  getConsoleSyncer(),
			wantEncoder: getLoggerEncoder("console"),
			wantSinks:   []ZapSink{{getLoggerEncoder("console"), getConsoleSyncer()}},
		},
		{
			name: "json",
			fields: fields{
				Level:  "warn",
				Format: "json",
				Entry:  zapcore.Entry{Level: zapcore.WarnLevel, Message: "json msg"},
			},
			wantLevel:   zap.NewAtomicLevelAt(zap.WarnLevel),
			wantOpts:    []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()},
			wantSyncer:  getConsoleSyncer(),
			wantEncoder: getLoggerEncoder("json"),
			wantSinks:   []ZapSink{{getLoggerEncoder("json"), getConsoleSyncer()}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &LogConfig{
				Level:      tt.fields.Level,
				Format:     tt.fields.Format,
				Filename:   tt.fields.Filename,
				MaxSize:    tt.fields.MaxSize,
				MaxDays:    tt.fields.MaxDays,
				MaxBackups: tt.fields.MaxBackups,
			}
			require.Equal(t, tt.wantLevel, cfg.getLevel())
			require.Equal(t, len(tt.wantOpts), len(cfg.getOptions()))
			require.Equal(t, tt.wantSyncer, cfg.getSyncer())
			wantMsg, _ := tt.wantEncoder.EncodeEntry(tt.fields.Entry, nil)
			gotMsg, _ := cfg.getEncoder().EncodeEntry(tt.fields.Entry, nil)
			require.Equal(t, wantMsg.String(), gotMsg.String())
			require.Equal(t, len(tt.wantSinks), len(cfg.getSinks()))
		})
	}
}

func TestSetupMOLogger(t *testing.T) {
	defer leaktest.AfterTest(t)()
	old := GetGlobalLogger()
	defer ReplaceGlobalLogger(old)

	tests := []struct {
		name string
		conf *LogConfig
	}{
		{
			name: "console",
			conf: &LogConfig{
				Level:           zapcore.DebugLevel.String(),
				Format:          "console",
				MaxSize:         512,
				StacktraceLevel: "panic",
			},
		},
		{
			name: "json",
			conf: &LogConfig{
				Level:           zapcore.DebugLevel.String(),
				Format:          "json",
				MaxSize:         512,
				StacktraceLevel: "error",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupMOLogger(tt.conf)
			require.NotNil(t, GetGlobalLogger())
		})
	}
}

func TestSetupMOLogger_panic(t *testing.T) {
	format := "other"
	defer func() {
		err := recover()
		require.Equal(t, moerr.NewInternalError(context.TODO(), "unsupported log format: %s", format), err)
	}()
	SetupMOLogger(&LogConfig{Level: "debug", Format: format})
}

func TestContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	old := ReplaceGlobalLogger(zap.New(core))
	defer ReplaceGlobalLogger(old)

	ctx := context.WithValue(context.Background(), moerr.StatementIDKey{}, "stmt-7")
	GetGlobalLogger().WithOptions(ContextFields()(ctx)).Info("with statement")
	GetGlobalLogger().WithOptions(ContextFields()(context.Background())).Info("without statement")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "stmt-7", entries[0].ContextMap()[StatementIDField])
	_, ok := entries[1].ContextMap()[StatementIDField]
	require.False(t, ok)
}

func TestApiHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	old := ReplaceGlobalLogger(zap.New(core))
	defer ReplaceGlobalLogger(old)

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	Infof("pattern %s", "a+")
	require.Equal(t, 5, logs.Len())
	require.Equal(t, "pattern a+", logs.All()[4].Message)
}
