package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Kiadisa/services/redis"
	"Kiadisa/services/socket_io/handlers"
	socketio_types "Kiadisa/services/socket_io/types"
	socketio_utils "Kiadisa/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to reduce network load and support
	// slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		success, username := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(username, client)
		fmt.Println("An individual just connected!: ", username)

		// Join the socket to a game room (registers the player too)
		client.On("join_game", handlers.HandleJoinGame(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Leave a game room voluntarily
		client.On("leave_game", handlers.HandleLeaveGame(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Host takes the game out of the lobby
		client.On("start_game", handlers.HandleStartGame(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Record the player's answer for the current round
		client.On("submit_answer", handlers.HandleSubmitAnswer(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Record or replace the player's vote for the current round
		client.On("submit_vote", handlers.HandleSubmitVote(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Host moves the game to its next phase
		client.On("advance_phase", handlers.HandleAdvancePhase(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Resync: reply with the game's Redis snapshot
		client.On("get_game_state", handlers.HandleGetGameState(redisClient, client, db, username))

		// Removes the sio connection from the map
		client.On("disconnecting", handlers.HandleDisconnecting(redisClient, username, (*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
