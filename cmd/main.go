package main

import (
	"context"
	"log"
	"os"

	"futures-order-bot-binance/internal/api"
	"futures-order-bot-binance/internal/cli"
	"futures-order-bot-binance/internal/config"
	"futures-order-bot-binance/internal/core"
	"futures-order-bot-binance/internal/logger"
	"futures-order-bot-binance/internal/model"
	"futures-order-bot-binance/internal/service"
)

func main() {
	logger.Init()
	logger.Info("Starting Binance Futures Testnet Order Bot...")

	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := api.NewFuturesClient(cfg)

	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		logger.Error("Failed to connect to Binance API", "error", err)
		log.Fatalf("Bot initialization failed: %v", err)
	}
	logger.Info("Connection to Binance API successful")

	bot := core.NewBasicBot(client)
	req := opts.Request

	logger.Info("Order request parsed",
		"symbol", req.Symbol,
		"side", req.Side,
		"type", req.Type,
		"quantity", req.Quantity,
		"auto_adjust", req.AutoAdjust,
	)

	var result model.OrderResult
	switch req.Type {
	case model.OrderTypeMarket:
		result = bot.PlaceMarketOrder(ctx, req)
	case model.OrderTypeLimit:
		result = bot.PlaceLimitOrder(ctx, req)
	case model.OrderTypeStopLimit:
		result = bot.PlaceStopLimitOrder(ctx, req)
	}

	service.PrintOrderResult(result)

	if result.Success {
		logger.Info("Final order outcome", "message", result.Message)
	} else {
		logger.Error("Final order outcome", "message", result.Message, "error", result.Err)
	}
	logger.Info("Trading bot session ended")

	if !result.Success {
		os.Exit(1)
	}
}
