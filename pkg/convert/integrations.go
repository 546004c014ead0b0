package convert

import (
	"github.com/aretw0/autoplan/pkg/domain"
)

// Integration families with a fixed config shape.
const (
	IntegrationEmail = "email"
	IntegrationChat  = "chat"
	IntegrationHTTP  = "http"
	IntegrationNotes = "notes"
)

type firstClass struct {
	integration string
	provider    string
}

var firstClassIntegrations = map[string]firstClass{
	basePrefix + "gmail":            {IntegrationEmail, "gmail"},
	basePrefix + "emailSend":        {IntegrationEmail, "smtp"},
	basePrefix + "microsoftOutlook": {IntegrationEmail, "outlook"},
	basePrefix + "sendGrid":         {IntegrationEmail, "sendgrid"},
	basePrefix + "mailgun":          {IntegrationEmail, "mailgun"},
	basePrefix + "slack":            {IntegrationChat, "slack"},
	basePrefix + "discord":          {IntegrationChat, "discord"},
	basePrefix + "telegram":         {IntegrationChat, "telegram"},
	basePrefix + "mattermost":       {IntegrationChat, "mattermost"},
	basePrefix + "microsoftTeams":   {IntegrationChat, "teams"},
	basePrefix + "whatsApp":         {IntegrationChat, "whatsapp"},
	basePrefix + "rocketchat":       {IntegrationChat, "rocketchat"},
	basePrefix + "googleChat":       {IntegrationChat, "google-chat"},
	basePrefix + "httpRequest":      {IntegrationHTTP, "http"},

	langchainPrefix + "toolHttpRequest": {IntegrationHTTP, "http"},
}

// emailParams lists the parameter aliases used by the mail nodes.
type emailParams struct {
	SendTo       string `mapstructure:"sendTo"`
	ToEmail      string `mapstructure:"toEmail"`
	ToRecipients string `mapstructure:"toRecipients"`
	FromEmail    string `mapstructure:"fromEmail"`
	Subject      string `mapstructure:"subject"`
	Message      string `mapstructure:"message"`
	Text         string `mapstructure:"text"`
	HTML         string `mapstructure:"html"`
	BodyContent  string `mapstructure:"bodyContent"`
	Operation    string `mapstructure:"operation"`
}

type chatParams struct {
	Channel   string `mapstructure:"channel"`
	ChannelID string `mapstructure:"channelId"`
	ChatID    string `mapstructure:"chatId"`
	User      string `mapstructure:"user"`
	Text      string `mapstructure:"text"`
	Content   string `mapstructure:"content"`
	Message   string `mapstructure:"message"`
	Operation string `mapstructure:"operation"`
}

type httpParams struct {
	Method           string `mapstructure:"method"`
	RequestMethod    string `mapstructure:"requestMethod"`
	URL              string `mapstructure:"url"`
	JSONBody         any    `mapstructure:"jsonBody"`
	Body             any    `mapstructure:"body"`
	HeaderParameters struct {
		Parameters []struct {
			Name  string `mapstructure:"name"`
			Value string `mapstructure:"value"`
		} `mapstructure:"parameters"`
	} `mapstructure:"headerParameters"`
}

// shapeFirstClass builds the fixed nested config for a first-class integration.
func (c *Converter) shapeFirstClass(fc firstClass, nodeName string, params map[string]any) map[string]any {
	config := map[string]any{
		domain.KeyIntegration: fc.integration,
		domain.KeyProvider:    fc.provider,
	}
	switch fc.integration {
	case IntegrationEmail:
		var p emailParams
		c.decode(nodeName, params, &p)
		config["operation"] = firstNonEmpty(p.Operation, "send")
		config["email"] = map[string]any{
			"to":      firstNonEmpty(p.SendTo, p.ToEmail, p.ToRecipients),
			"from":    p.FromEmail,
			"subject": p.Subject,
			"body":    firstNonEmpty(p.Message, p.Text, p.HTML, p.BodyContent),
		}
	case IntegrationChat:
		var p chatParams
		c.decode(nodeName, params, &p)
		config["operation"] = firstNonEmpty(p.Operation, "post")
		config["message"] = map[string]any{
			"channel": firstNonEmpty(p.ChannelID, p.Channel, p.ChatID, p.User),
			"text":    firstNonEmpty(p.Text, p.Content, p.Message),
		}
	case IntegrationHTTP:
		var p httpParams
		c.decode(nodeName, params, &p)
		headers := make(map[string]any, len(p.HeaderParameters.Parameters))
		for _, h := range p.HeaderParameters.Parameters {
			if h.Name != "" {
				headers[h.Name] = h.Value
			}
		}
		body := p.JSONBody
		if body == nil {
			body = p.Body
		}
		config["request"] = map[string]any{
			"method":  firstNonEmpty(p.Method, p.RequestMethod, "GET"),
			"url":     p.URL,
			"headers": headers,
			"body":    cloneValue(body),
		}
	}
	return config
}

// shapeGeneric tags a generic integration node for the HTTP executor.
func shapeGeneric(label string, params map[string]any) map[string]any {
	operation, _ := stringParam(params, "operation")
	resource, _ := stringParam(params, "resource")
	return map[string]any{
		domain.KeyIntegration: IntegrationHTTP,
		domain.KeyService:     label,
		"operation":           operation,
		"resource":            resource,
	}
}

func (c *Converter) decode(nodeName string, params map[string]any, target any) {
	if err := decodeParams(params, target); err != nil {
		c.logger.Debug("partial parameter decode", "node", nodeName, "err", err)
	}
}

// genericIntegrations maps service node identifiers to their display label.
var genericIntegrations = buildGenericIntegrations()

func buildGenericIntegrations() map[string]string {
	labels := map[string]string{
		"activeCampaign":               "ActiveCampaign",
		"affinity":                     "Affinity",
		"agileCrm":                     "Agile CRM",
		"airtable":                     "Airtable",
		"apiTemplateIo":                "APITemplate.io",
		"asana":                        "Asana",
		"awsLambda":                    "AWS Lambda",
		"awsRekognition":               "AWS Rekognition",
		"awsS3":                        "AWS S3",
		"awsSes":                       "AWS SES",
		"awsSns":                       "AWS SNS",
		"awsSqs":                       "AWS SQS",
		"awsTextract":                  "AWS Textract",
		"bambooHr":                     "BambooHR",
		"bannerbear":                   "Bannerbear",
		"baserow":                      "Baserow",
		"bitbucket":                    "Bitbucket",
		"box":                          "Box",
		"brevo":                        "Brevo",
		"calendly":                     "Calendly",
		"circleCi":                     "CircleCI",
		"clearbit":                     "Clearbit",
		"clickUp":                      "ClickUp",
		"clockify":                     "Clockify",
		"cloudflare":                   "Cloudflare",
		"coda":                         "Coda",
		"contentful":                   "Contentful",
		"convertKit":                   "ConvertKit",
		"copper":                       "Copper",
		"crateDb":                      "CrateDB",
		"deepL":                        "DeepL",
		"discourse":                    "Discourse",
		"dropbox":                      "Dropbox",
		"elasticsearch":                "Elasticsearch",
		"erpNext":                      "ERPNext",
		"facebookGraphApi":             "Facebook Graph API",
		"freshdesk":                    "Freshdesk",
		"freshservice":                 "Freshservice",
		"ftp":                          "FTP",
		"ghost":                        "Ghost",
		"github":                       "GitHub",
		"gitlab":                       "GitLab",
		"googleAnalytics":              "Google Analytics",
		"googleBigQuery":               "Google BigQuery",
		"googleCalendar":               "Google Calendar",
		"googleCloudStorage":           "Google Cloud Storage",
		"googleContacts":               "Google Contacts",
		"googleDocs":                   "Google Docs",
		"googleDrive":                  "Google Drive",
		"googleFirebaseCloudFirestore": "Google Cloud Firestore",
		"googlePerspective":            "Google Perspective",
		"googleSheets":                 "Google Sheets",
		"googleSlides":                 "Google Slides",
		"googleTasks":                  "Google Tasks",
		"googleTranslate":              "Google Translate",
		"gotify":                       "Gotify",
		"grafana":                      "Grafana",
		"grist":                        "Grist",
		"harvest":                      "Harvest",
		"helpScout":                    "Help Scout",
		"hubspot":                      "HubSpot",
		"hunter":                       "Hunter",
		"intercom":                     "Intercom",
		"jenkins":                      "Jenkins",
		"jira":                         "Jira",
		"kafka":                        "Kafka",
		"keap":                         "Keap",
		"lemlist":                      "Lemlist",
		"line":                         "Line",
		"linear":                       "Linear",
		"linkedIn":                     "LinkedIn",
		"mailchimp":                    "Mailchimp",
		"matrix":                       "Matrix",
		"mautic":                       "Mautic",
		"medium":                       "Medium",
		"microsoftDynamicsCrm":         "Microsoft Dynamics CRM",
		"microsoftExcel":               "Microsoft Excel",
		"microsoftOneDrive":            "Microsoft OneDrive",
		"microsoftSql":                 "Microsoft SQL",
		"microsoftToDo":                "Microsoft To Do",
		"mindee":                       "Mindee",
		"mondayCom":                    "monday.com",
		"mongoDb":                      "MongoDB",
		"mqtt":                         "MQTT",
		"mySql":                        "MySQL",
		"netlify":                      "Netlify",
		"nextCloud":                    "Nextcloud",
		"nocoDb":                       "NocoDB",
		"notion":                       "Notion",
		"odoo":                         "Odoo",
		"openWeatherMap":               "OpenWeatherMap",
		"pagerDuty":                    "PagerDuty",
		"paypal":                       "PayPal",
		"phantombuster":                "Phantombuster",
		"pipedrive":                    "Pipedrive",
		"postgres":                     "Postgres",
		"pushbullet":                   "Pushbullet",
		"pushover":                     "Pushover",
		"questDb":                      "QuestDB",
		"quickbooks":                   "QuickBooks",
		"quickChart":                   "QuickChart",
		"rabbitmq":                     "RabbitMQ",
		"reddit":                       "Reddit",
		"redis":                        "Redis",
		"rssFeedRead":                  "RSS Feed",
		"rundeck":                      "Rundeck",
		"s3":                           "S3",
		"salesforce":                   "Salesforce",
		"sentryIo":                     "Sentry",
		"serviceNow":                   "ServiceNow",
		"shopify":                      "Shopify",
		"signl4":                       "SIGNL4",
		"snowflake":                    "Snowflake",
		"spotify":                      "Spotify",
		"ssh":                          "SSH",
		"strapi":                       "Strapi",
		"stripe":                       "Stripe",
		"supabase":                     "Supabase",
		"timescaleDb":                  "TimescaleDB",
		"todoist":                      "Todoist",
		"toggl":                        "Toggl",
		"travisCi":                     "Travis CI",
		"trello":                       "Trello",
		"twilio":                       "Twilio",
		"twitter":                      "X (Twitter)",
		"typeform":                     "Typeform",
		"uptimeRobot":                  "UptimeRobot",
		"vonage":                       "Vonage",
		"webflow":                      "Webflow",
		"wooCommerce":                  "WooCommerce",
		"wordpress":                    "WordPress",
		"xero":                         "Xero",
		"youTube":                      "YouTube",
		"zendesk":                      "Zendesk",
		"zohoCrm":                      "Zoho CRM",
		"zoom":                         "Zoom",
	}
	out := make(map[string]string, len(labels))
	for name, label := range labels {
		out[basePrefix+name] = label
	}
	return out
}

// IntegrationLabel returns the display label of a generic integration identifier.
func IntegrationLabel(identifier string) (string, bool) {
	label, ok := genericIntegrations[identifier]
	return label, ok
}
