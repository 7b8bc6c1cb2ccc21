package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/settingsgen/internal/schema"
)

// EmitSerializer renders the function that writes the record back into the
// schema's textual shape: "[section]" headers followed by key=value lines in
// declared order. The retry discipline around it — flush and fsync before
// trusting a write, unlink and recreate a file that exists but cannot be
// opened — is part of the generated contract, not of this compiler.
func EmitSerializer(m *schema.Model) string {
	var b strings.Builder

	b.WriteString(`/**
 * @brief Save the record to a file in the schema's text format.
 *
 * @param[in] filename destination path
 * @param[in] settings record to save
 * @return int
 * @retval 0 saved
 * @retval -1 failed: NULL argument
 * @retval -2 failed: all write attempts exhausted
 */
int write_settings_to_file(const char* filename, const Settings* settings) {
    SETTINGS_PERSIST_SET_FUNC_LOG_TAG("write_settings_to_file");
    if (!filename || !settings)
    {
        errno = EINVAL;
        SETTINGS_PERSIST_LOG_ERROR("NULL argument");
        return -1;
    }

    FILE* file = NULL;
    int retries = 2; /* one clean write, one delete-and-recreate write */

    while (retries-- > 0) {
        file = fopen(filename, "w");
        if (file) {
`)

	for _, section := range m.Sections() {
		fmt.Fprintf(&b, "            /* Write %s settings */\n", section)
		fmt.Fprintf(&b, "            fprintf(file, \"[%s]\\n\");\n", section)
		for _, e := range m.Entries(section) {
			ref := handlerRef(e)
			switch e.Type.Kind {
			case schema.TypeInt:
				fmt.Fprintf(&b, "            fprintf(file, \"%s=%%d\\n\", %s);\n", e.Key, ref)
			case schema.TypeFloat:
				fmt.Fprintf(&b, "            fprintf(file, \"%s=%%f\\n\", %s);\n", e.Key, ref)
			case schema.TypeBool:
				fmt.Fprintf(&b, "            fprintf(file, \"%s=%%s\\n\", %s ? \"true\" : \"false\");\n", e.Key, ref)
			case schema.TypeString:
				fmt.Fprintf(&b, "            fprintf(file, \"%s=%%s\\n\", %s);\n", e.Key, ref)
			}
		}
	}

	b.WriteString(`            /* Force the data to disk before trusting the write. */
            int fd = fileno(file);
            if (fflush(file) != 0 || fsync(fd) != 0) {
                fclose(file);
                errno = EIO;
                continue; /* flush failed, retry */
            }
            fclose(file);
            SETTINGS_PERSIST_LOG_DEBUG("saved");
            return 0;
        }

        SETTINGS_PERSIST_LOG_ERROR("save failed");
        int err = errno;
        /* Only a file that exists but cannot be opened is recoverable. */
        if (err != EIO && err != EACCES) {
            SETTINGS_PERSIST_LOG_WARN("unrecoverable open failure");
            break;
        }
        struct stat st;
        int file_exists = (stat(filename, &st) == 0);
        int is_regular = file_exists ? S_ISREG(st.st_mode) : 0;

        if (file_exists && is_regular) {
            SETTINGS_PERSIST_LOG_INFO("file exists but cannot be opened, deleting for recreate");
            if (unlink(filename) != 0) {
                SETTINGS_PERSIST_LOG_ERROR("unlink failed, giving up");
                break;
            }
        }
        else {
            SETTINGS_PERSIST_LOG_WARN("file missing or not a regular file, nothing to delete");
            break;
        }
    }
    SETTINGS_PERSIST_LOG_ERROR("every write attempt failed");
    return -2;
}
`)
	return b.String()
}
