package codegen

import (
	"fmt"
	"time"

	"github.com/vk/settingsgen/internal/schema"
)

// Output file names. Hand-written runtime code includes these by name, so
// they are part of the interoperability contract.
const (
	HeaderFileName   = "settings_persist.h"
	ImplFileName     = "settings_auto_generated.c"
	ManifestFileName = "settings_manifest.json"
)

// Artifacts bundles the complete generated output for one model.
type Artifacts struct {
	Header   string // HeaderFileName content
	Impl     string // ImplFileName content
	Manifest string // ManifestFileName content
}

// Generate runs every emitter against the model and assembles the output
// files. The timestamp only appears in the file banners and is injected by
// the caller, keeping the emitters themselves fully deterministic.
func Generate(m *schema.Model, now time.Time) (Artifacts, error) {
	manifestText, err := EmitManifest(m)
	if err != nil {
		return Artifacts{}, fmt.Errorf("rendering schema manifest: %w", err)
	}

	header := fileBanner(HeaderFileName, "Interface of the settings_persist module", now)
	header += EmitStructLayout(m)

	impl := fileBanner(ImplFileName, "Generated portion of the settings_persist module", now)
	impl += implPrologue
	impl += EmitFieldSetters(m)
	impl += "\n"
	impl += EmitParseHandler(m)
	impl += "\n"
	impl += EmitDefaultsRestorer(m)
	impl += "\n"
	impl += EmitSerializer(m)

	return Artifacts{Header: header, Impl: impl, Manifest: manifestText}, nil
}

func fileBanner(filename, brief string, now time.Time) string {
	return fmt.Sprintf(`/**
 * @file %s
 * @brief %s
 * @date %s
 *
 * @attention This file is generated by settingsgen. Do not edit manually!
 */
`, filename, brief, now.Format("2006-01-02 15:04:05"))
}

const implPrologue = `#include <errno.h>
#include <pthread.h>
#include <stdio.h>
#include <string.h>
#include <stdlib.h>
#include <unistd.h>
#include <sys/stat.h>
#include "settings_persist.h"
#define SETTINGS_PERSIST_MODULE_TAG "settings_persist"
#include "settings_persist_log.h"

`
