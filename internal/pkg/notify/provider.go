// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package notify

import (
	"github.com/go-arcade/socd/internal/pkg/notify/channel"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/go-arcade/socd/pkg/metrics"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideChannel,
	ProvideMailer,
)

func ProvideChannel(conf *Conf) (channel.INotifyChannel, error) {
	if err := conf.SetDefaults().Validate(); err != nil {
		return nil, err
	}
	var ch channel.INotifyChannel
	switch conf.Provider {
	case ChannelTypeSMTP:
		ch = channel.NewEmailChannel(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.Username, conf.SMTP.Password)
	case ChannelTypeLog:
		log.Warnw("mail provider is log, invitation codes will be written to the log")
		ch = channel.NewLogChannel()
	default:
		ch = channel.NewResendChannel(conf.Resend.BaseUrl, conf.Resend.ApiKey, conf.Resend.Timeout)
	}
	return ch, nil
}

func ProvideMailer(conf *Conf, ch channel.INotifyChannel, m *metrics.Onboarding) (*Mailer, func(), error) {
	mailer, err := NewMailer(conf.From, ch, m)
	if err != nil {
		return nil, nil, err
	}
	log.Infow("mailer initialized", "provider", conf.Provider)
	return mailer, func() { _ = mailer.Close() }, nil
}
