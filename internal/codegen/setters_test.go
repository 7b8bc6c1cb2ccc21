package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitFieldSetters_RangeAndLengthGuards(t *testing.T) {
	t.Parallel()

	out := EmitFieldSetters(fixtureModel(t))

	assert.Contains(t, out, "int settings_persist_set_Network_port(SettingsPersistCtx *ctx, int port)")
	assert.Contains(t, out, "if (port > 65535 || port < 0)")
	assert.Contains(t, out, `SETTINGS_PERSIST_LOG_WARN("value out of range: 0~65535");`)

	assert.Contains(t, out, "int settings_persist_set_Network_name(SettingsPersistCtx *ctx, const char* name)")
	assert.Contains(t, out, "if (strlen(name) > 15)", "capacity 16 leaves 15 payload bytes")
	assert.Contains(t, out, "strcpy(ctx->cache.Network.name, name);")

	// A bool has no guard: straight to the locked assignment.
	assert.Contains(t, out, "int settings_persist_set_Network_enabled(SettingsPersistCtx *ctx, bool enabled)")
	assert.Contains(t, out, "ctx->cache.Network.enabled = enabled;")

	assert.NotContains(t, out, "settings_persist_set_Verify_crc_16_ibm",
		"the checksum marker gets no setter")
}

func TestEmitFieldSetters_GuardDiscipline(t *testing.T) {
	t.Parallel()

	out := EmitFieldSetters(fixtureModel(t))

	// Inspect one setter body in isolation.
	start := strings.Index(out, "int settings_persist_set_Network_port")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(out[start:], "\n}\n")
	require.GreaterOrEqual(t, end, 0)
	body := out[start : start+end]

	statusLock := strings.Index(body, "pthread_mutex_lock(&ctx->status_mutex);")
	readyCheck := strings.Index(body, "if (!ctx->running)")
	cacheLock := strings.Index(body, "pthread_mutex_lock(&ctx->cache_mutex);")
	mutate := strings.Index(body, "ctx->cache.Network.port = port;")
	cacheUnlock := strings.Index(body, "pthread_mutex_unlock(&ctx->cache_mutex);")
	statusUnlock := strings.LastIndex(body, "pthread_mutex_unlock(&ctx->status_mutex);")

	for _, idx := range []int{statusLock, readyCheck, cacheLock, mutate, cacheUnlock, statusUnlock} {
		require.GreaterOrEqual(t, idx, 0, "missing a stage of the guard discipline:\n%s", body)
	}
	assert.Less(t, statusLock, readyCheck)
	assert.Less(t, readyCheck, cacheLock)
	assert.Less(t, cacheLock, mutate)
	assert.Less(t, mutate, cacheUnlock)
	assert.Less(t, cacheUnlock, statusUnlock)

	// Early rejection still releases the readiness guard before returning -2.
	notReady := strings.Index(body, "return -2;")
	require.GreaterOrEqual(t, notReady, 0)
	earlyUnlock := strings.Index(body, "pthread_mutex_unlock(&ctx->status_mutex);")
	assert.Less(t, earlyUnlock, notReady)
}

func TestEmitFieldSetters_ResetAll(t *testing.T) {
	t.Parallel()

	out := EmitFieldSetters(fixtureModel(t))

	assert.Contains(t, out, "int settings_persist_reset_all_data(SettingsPersistCtx *ctx)")
	assert.Contains(t, out, "settings_restore_defaults(&ctx->cache);")
	assert.Contains(t, out, `SETTINGS_PERSIST_LOG_WARN("reset rejected: settings_persist not initialized");`)
}
