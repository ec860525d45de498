package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/spcloud/urlship/internal/api"
)

const (
	handlerPresignedURLs = "presigned-urls"
	handlerDeviceLink    = "device-link"
)

// Environment read when the binary is a Lambda bootstrap started without arguments.
const (
	envLambdaRuntimeAPI = "AWS_LAMBDA_RUNTIME_API"
	envLambdaHandler    = "URLSHIP_LAMBDA_HANDLER"
)

// lambdaHandlerFromEnv reports whether the process runs inside the Lambda
// runtime and which handler it should serve.
func lambdaHandlerFromEnv(getenv func(string) string) (string, bool) {
	if getenv(envLambdaRuntimeAPI) == "" {
		return "", false
	}
	if name := getenv(envLambdaHandler); name != "" {
		return name, true
	}
	return handlerPresignedURLs, true
}

func newLambdaCmd(c *cli) *cobra.Command {
	var handlerName string

	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Serve API Gateway proxy events on AWS Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("handler") {
				if name := os.Getenv(envLambdaHandler); name != "" {
					handlerName = name
				}
			}
			return runLambda(c, cmd, handlerName)
		},
	}

	cmd.Flags().StringVar(&handlerName, "handler", handlerPresignedURLs, "handler to serve: presigned-urls or device-link")
	return cmd
}

// runLambda builds the named handler and hands control to the Lambda runtime.
func runLambda(c *cli, cmd *cobra.Command, handlerName string) error {
	if err := c.load(cmd); err != nil {
		return err
	}
	ctx := context.Background()
	logger := c.portsLogger()

	var h api.Handler
	switch handlerName {
	case handlerPresignedURLs:
		pipeline, err := buildPipeline(ctx, &c.cfg, logger)
		if err != nil {
			return err
		}
		h = api.NewPublishHandler(pipeline, logger)
	case handlerDeviceLink:
		registry, err := buildLinkRegistry(ctx, &c.cfg)
		if err != nil {
			return err
		}
		h = api.NewLinkHandler(registry, logger)
	default:
		return fmt.Errorf("unknown handler %q (want %s or %s)", handlerName, handlerPresignedURLs, handlerDeviceLink)
	}

	c.log.Info().Str("handler", handlerName).Msg("starting lambda runtime")
	lambda.Start(api.NewLambdaFunc(h))
	return nil
}
