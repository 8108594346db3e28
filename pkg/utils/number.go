package utils

const microsPerUnit = 1_000_000

// MicrosToUnits converte valores monetários em micros para a unidade da moeda
func MicrosToUnits(micros int64) float64 {
	return float64(micros) / microsPerUnit
}
