// Package card builds the chat backend's card markup. Markup shape is owned
// by the backend; everything here is presentation only and carries no poll
// logic beyond choosing what the anonymity flag allows to be shown.
package card

import (
	"fmt"
	"strconv"
	"strings"

	"tally/internal/models"
)

type Renderer struct{}

func NewRenderer() Renderer {
	return Renderer{}
}

// PollCard renders the shared poll message. Every interactive widget embeds
// the encoded state snapshot so the next action can reconstruct the poll.
func (Renderer) PollCard(p *models.Poll, encoded string) models.Card {
	subtitle := "发起人 " + p.Author.Name
	if p.Closed() {
		subtitle += " · 已结束"
	}

	choiceWidgets := make([]models.Card, 0, len(p.Choices))
	for i, choice := range p.Choices {
		widget := models.Card{
			"decoratedText": models.Card{
				"text":        choice,
				"bottomLabel": tallyLine(p, i),
			},
		}
		if !p.Closed() {
			widget["decoratedText"].(models.Card)["button"] = button("投票", models.ActionVote, map[string]string{
				"index": strconv.Itoa(i),
				"state": encoded,
			})
		}
		choiceWidgets = append(choiceWidgets, widget)
	}

	sections := []models.Card{{"widgets": choiceWidgets}}
	if !p.Closed() {
		sections = append(sections, models.Card{
			"widgets": []models.Card{{
				"buttonList": models.Card{"buttons": []models.Card{
					button("添加选项", models.ActionAddOptionForm, map[string]string{"state": encoded}),
					button("结束投票", models.ActionClosePollForm, map[string]string{"state": encoded}),
				}},
			}},
		})
	}

	return models.Card{
		"header": models.Card{
			"title":    p.Topic,
			"subtitle": subtitle,
		},
		"sections": sections,
	}
}

// NewPollForm renders the creation dialog. Prefill values are threaded back
// in when validation fails so the user never loses what they typed.
func (Renderer) NewPollForm(topic string, choices []string) models.Card {
	widgets := []models.Card{
		textInput("topic", "投票主题", topic),
	}
	for i := 0; i < 5; i++ {
		value := ""
		if i < len(choices) {
			value = choices[i]
		}
		name := "option" + strconv.Itoa(i+1)
		widgets = append(widgets, textInput(name, fmt.Sprintf("选项 %d", i+1), value))
	}
	widgets = append(widgets,
		toggle("anon", "匿名投票"),
		toggle("creator_only", "仅发起人可结束"),
		models.Card{
			"buttonList": models.Card{"buttons": []models.Card{
				button("创建", models.ActionStartPoll, nil),
			}},
		},
	)
	return models.Card{"sections": []models.Card{{"widgets": widgets}}}
}

func (Renderer) AddOptionForm(p *models.Poll, encoded string) models.Card {
	return models.Card{"sections": []models.Card{{
		"header": "添加选项 — " + p.Topic,
		"widgets": []models.Card{
			textInput("option", "新选项", ""),
			{"buttonList": models.Card{"buttons": []models.Card{
				button("提交", models.ActionAddOption, map[string]string{"state": encoded}),
			}}},
		},
	}}}
}

func (Renderer) CloseConfirmation(p *models.Poll, encoded string) models.Card {
	return models.Card{"sections": []models.Card{{
		"widgets": []models.Card{
			{"textParagraph": models.Card{
				"text": fmt.Sprintf("确定要结束「%s」吗？已收到 %d 票。", p.Topic, p.TotalVotes()),
			}},
			{"buttonList": models.Card{"buttons": []models.Card{
				button("确认结束", models.ActionClosePoll, map[string]string{"state": encoded}),
			}}},
		},
	}}}
}

func (Renderer) PermissionDenied(p *models.Poll) models.Card {
	return models.Card{"sections": []models.Card{{
		"widgets": []models.Card{{
			"textParagraph": models.Card{
				"text": fmt.Sprintf("只有发起人 %s 可以结束这个投票。", p.Author.Name),
			},
		}},
	}}}
}

// tallyLine is where anonymity bites: counts only when anon, names otherwise.
func tallyLine(p *models.Poll, choice int) string {
	voters := p.Votes[choice]
	if p.Anon || len(voters) == 0 {
		return fmt.Sprintf("%d 票", len(voters))
	}
	names := make([]string, 0, len(voters))
	for _, v := range voters {
		names = append(names, v.Name)
	}
	return fmt.Sprintf("%d 票: %s", len(voters), strings.Join(names, ", "))
}

func button(text, action string, params map[string]string) models.Card {
	parameters := make([]models.Card, 0, len(params))
	for key, value := range params {
		parameters = append(parameters, models.Card{"key": key, "value": value})
	}
	return models.Card{
		"text": text,
		"onClick": models.Card{
			"action": models.Card{
				"function":   action,
				"parameters": parameters,
			},
		},
	}
}

func textInput(name, label, value string) models.Card {
	return models.Card{
		"textInput": models.Card{
			"name":  name,
			"label": label,
			"value": value,
		},
	}
}

func toggle(name, label string) models.Card {
	return models.Card{
		"switchControl": models.Card{
			"name":  name,
			"label": label,
		},
	}
}
