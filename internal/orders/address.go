package orders

// FormatAddress menyusun satu baris alamat dari komponen opsional.
// Urutan tetap: alamat dasar, RT/RW (hanya jika keduanya ada), No. rumah,
// kode pos, lalu catatan dalam kurung. String kosong = tidak ada.
func FormatAddress(base string, rt, rw, houseNumber, postalCode, detail string) string {
	out := base
	if rt != "" && rw != "" {
		out += ", RT " + rt + "/RW " + rw
	}
	if houseNumber != "" {
		out += ", No. " + houseNumber
	}
	if postalCode != "" {
		out += ", " + postalCode
	}
	if detail != "" {
		out += " (" + detail + ")"
	}
	return out
}

// deref is the empty-string view of a nullable column.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
