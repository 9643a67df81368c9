package loader

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"

	"agroalert.dev/dashboard-service/pkg/store/mocks"
)

func GetMockLoader(t *testing.T) (*gomock.Controller, *Loader, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	return ctrl, New(mockStore), mockStore
}

func ParseLogs(r io.Reader) []map[string]any {
	scanner := bufio.NewScanner(r)
	var logs []map[string]any

	for scanner.Scan() {
		var j map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
