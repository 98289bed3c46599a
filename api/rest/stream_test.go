package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restapi "github.com/hedisam/txchain/api/rest"
	"github.com/hedisam/txchain/api/rest/mocks"
	"github.com/hedisam/txchain/internal/ledger"
	lt "github.com/hedisam/txchain/internal/ledger/ledgertest"
)

func TestStreamHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	records := lt.GenesisLedger(t)

	subscriberMock := &mocks.SubscriberMock{
		SubscribeFunc: func(ctx context.Context) <-chan ledger.Record {
			ch := make(chan ledger.Record, len(records))
			for _, r := range records {
				ch <- r
			}
			return ch
		},
	}

	router := gin.New()
	router.GET("/stream", restapi.NewStreamHandler(newLogger(), subscriberMock, restapi.CheckOrigin(nil)).ServeWS)
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	for _, expected := range records {
		var got ledger.Record
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, expected, got)
	}
	assert.Len(t, subscriberMock.SubscribeCalls(), 1)
}

func TestStreamHandlerRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	subscriberMock := &mocks.SubscriberMock{}
	router := gin.New()
	router.GET("/stream", restapi.NewStreamHandler(newLogger(), subscriberMock, restapi.CheckOrigin([]string{"http://wallet.local"})).ServeWS)
	srv := httptest.NewServer(router)
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://elsewhere.local"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, subscriberMock.SubscribeCalls())
}
