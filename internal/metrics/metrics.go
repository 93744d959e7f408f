// Package metrics exposes application metrics collectors.
package metrics

const namespace = "multichain"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
