package format

// ReportChunkSize is the maximum number of ledger entries per outgoing
// message. Telegram rejects texts above 4096 characters, so long
// reports are split.
const ReportChunkSize = 15

// Chunk splits items into consecutive groups of at most size elements.
// A nil or empty slice yields no chunks.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
