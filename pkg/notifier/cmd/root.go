/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/calyptra/verity/pkg/amqp"
	"github.com/calyptra/verity/pkg/amqp/rabbitmq"
	"github.com/calyptra/verity/pkg/datastore"
	"github.com/calyptra/verity/pkg/framework"
)

var (
	cfgFile string
	prov    *Provider
)

var rootCmd = &cobra.Command{
	Use:   "verity-notifier",
	Short: "The verity webhook notifier.",
	Long:  `Forwards verifiable-services protocol events to registered webhooks.`,
}

type Provider struct {
	vp    *viper.Viper
	store datastore.Store
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/verity/verity-webhook-notifier.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	vp := viper.New()
	if cfgFile != "" {
		vp.SetConfigFile(cfgFile)
	} else {
		vp.SetConfigType("yaml")
		vp.AddConfigPath("/etc/verity/")
		vp.AddConfigPath("./deploy/compose/")
		vp.SetConfigName("verity-webhook-notifier")
	}

	vp.SetEnvPrefix("VERITY")
	vp.AutomaticEnv() // read in environment variables that match
	_ = vp.BindPFlags(pflag.CommandLine)

	if err := vp.ReadInConfig(); err != nil {
		fmt.Println("unable to read config:", vp.ConfigFileUsed(), err)
		os.Exit(1)
	}

	dc := &framework.DatastoreConfig{}
	err := vp.UnmarshalKey("datastore", dc)
	if err != nil {
		log.Fatalln("invalid datastore key in configuration")
	}

	sp, err := dc.StorageProvider()
	if err != nil {
		log.Fatalln(err)
	}

	store, err := sp.Open()
	if err != nil {
		log.Fatalln("unable to open datastore")
	}

	prov = &Provider{
		vp:    vp,
		store: store,
	}
}

func (r *Provider) GetDatastore() datastore.Store {
	return r.store
}

func (r *Provider) GetAMQPListener(queue string) amqp.Listener {
	cfg := &framework.AMQPConfig{}
	err := r.vp.UnmarshalKey("amqp", cfg)
	if err != nil {
		log.Fatalln("invalid amqp key in configuration")
	}

	listener, err := rabbitmq.NewListener(cfg.Endpoint(), queue)
	if err != nil {
		log.Fatalln("unable to connect to amqp broker", err)
	}

	return listener
}
