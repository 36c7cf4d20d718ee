package imagegen

import "fmt"

// Human-readable status text per locale. Machine consumers should branch on
// Status, never on these strings.
var statusMessages = map[string]map[Status]string{
	"en": {
		StatusSuccess:    "Success",
		StatusMissingKey: "Error: API key required",
		StatusAPIError:   "API error %d",
		StatusNoImage:    "No image found in response",
		StatusFailed:     "Request failed: %v",
	},
	"id": {
		StatusSuccess:    "Berhasil",
		StatusMissingKey: "Kesalahan: API key wajib diisi",
		StatusAPIError:   "Kesalahan API %d",
		StatusNoImage:    "Tidak ada gambar pada respons",
		StatusFailed:     "Permintaan gagal: %v",
	},
}

func message(locale string, status Status) string {
	msgs, ok := statusMessages[locale]
	if !ok {
		msgs = statusMessages["en"]
	}
	return msgs[status]
}

func messagef(locale string, status Status, args ...any) string {
	return fmt.Sprintf(message(locale, status), args...)
}
