package repository

// Limite de parâmetros por comando do protocolo do postgres (lib/pq recusa acima disso)
const maxBindParams = 65535

const maxRowsPerStatement = 1000

// rowsPerStatement devolve quantas linhas cabem em um comando com paramsPerRow parâmetros cada
func rowsPerStatement(paramsPerRow int) int {
	if paramsPerRow < 1 {
		paramsPerRow = 1
	}
	return max(1, min(maxRowsPerStatement, maxBindParams/paramsPerRow))
}

func chunk[T any](items []T, size int) [][]T {
	var chunks [][]T
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[:size:size])
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}
