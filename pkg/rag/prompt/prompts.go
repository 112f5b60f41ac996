// Package prompt holds every template sent to the text-generation
// capability, plus the fixed refusal strings. Templates receive only
// PII-sanitized user text.
package prompt

import (
	"fmt"
	"strings"
)

// Refusal strings returned when the internal-ops gate fires. Never
// generated, always returned verbatim.
var refusals = map[string]string{
	"en": "Sorry—this system can’t share internal operational data. " +
		"If you need assistance with appointments, services, or clinic hours, I’m happy to help.",
	"zh": "抱歉，此系統不提供內部營運資料。若您需要預約、服務或門診時間等資訊，我很樂意協助。",
}

// RefusalFor returns the refusal text for a detected language tag. Any
// zh-* variant gets the Chinese refusal; everything else gets English.
func RefusalFor(lang string) string {
	if strings.HasPrefix(lang, "zh") {
		return refusals["zh"]
	}
	return refusals["en"]
}

func Intent(text string) string {
	return fmt.Sprintf(`Classify the user request for a public-facing TCM clinic chatbot.
Categories:
- "patient_care": symptoms, booking, services, hours, pricing, insurance, clinic directions/address/phone/email, what to expect.
- "general_info": TCM education, herbs, acupoints (non-diagnostic), clinic policies visible to the public.
- "internal_ops": staff schedules, counts/KPIs, new patient totals by time window, revenue, inventory, internal SOPs or data not for public.

Respond with ONLY valid JSON: {"intent":"...","confidence":0.0}
User (PII-redacted): %s`, text)
}

func Router(question string) string {
	return fmt.Sprintf(`You are a router for a clinic Q&A system.
Return route: "sql" (structured facts), "docs" (policies/notes), or "both".
If the question asks about price/cost/fee (EN or ZH), address/phone/email/hours/directions, prefer "sql".
Also return a confidence 0-1.
Question: %s
Respond with ONLY valid JSON: {"route":"...","confidence":0.0}`, question)
}

// tableInfo describes the fixed clinic schema for SQL generation. The
// ingestion job owns the schema; this text must track it.
const tableInfo = `clinic_info(id, name, tagline, tagline_zh, street, city, province, "postalCode", country, phone, email, booking_link, "updatedAt")
clinic_hours(clinic_id, day, open_time, close_time)
clinic_languages(clinic_id, language)
clinic_socials(clinic_id, platform, url)
team_members(id, type, "janeAppId", "firstName", "lastName", "fullName", prefix, title, "updatedAt")
team_specialties(practitioner_id, specialty)
team_languages(practitioner_id, language)
team_services(practitioner_id, service_id)
services(id, name, subtitle, subtitle_zh, "updatedAt")
service_specialties(service_id, specialty)
pricing(id, category, type, item, price, max, service_id, "updatedAt")
faqs(id, category, question, keywords, "updatedAt")`

func SQLGeneration(question string, topK int) string {
	var b strings.Builder
	b.WriteString("You are an expert PostgreSQL query writer. Using the user question and the table info,\n")
	b.WriteString("produce a SINGLE valid READ-ONLY SQL SELECT statement that retrieves the requested data.\n\n")
	b.WriteString("TABLES (from schema):\n")
	b.WriteString(tableInfo)
	b.WriteString("\n\nRULES:\n")
	b.WriteString("- Output ONLY the SQL query (no explanations, no comments, no code fences).\n")
	b.WriteString("- Query must be a single SELECT (NO INSERT/UPDATE/DELETE/DDL/CTE creating temp tables).\n")
	b.WriteString("- Match column names EXACTLY. Quote camelCase identifiers: \"postalCode\", \"updatedAt\",\n")
	b.WriteString("  \"firstName\", \"lastName\", \"fullName\", \"janeAppId\".\n")
	fmt.Fprintf(&b, "- Use LIMIT %d.\n", topK)
	b.WriteString("- Prefer ILIKE '%...%' for case-insensitive text matching.\n")
	b.WriteString("- If the answer cannot be derived from the tables, return an empty string.\n\n")
	b.WriteString("GUIDANCE BY TOPIC:\n")
	b.WriteString("• Address / phone / email / booking link:\n")
	b.WriteString("    SELECT street, city, province, \"postalCode\", country, phone, email, booking_link\n")
	b.WriteString("    FROM clinic_info\n")
	b.WriteString("    ORDER BY \"updatedAt\" DESC;\n\n")
	b.WriteString("• Hours:\n")
	b.WriteString("    SELECT h.day, h.open_time, h.close_time\n")
	b.WriteString("    FROM clinic_info ci\n")
	b.WriteString("    JOIN clinic_hours h ON h.clinic_id = ci.id\n")
	b.WriteString("    ORDER BY ci.\"updatedAt\" DESC, h.day ASC;\n\n")
	b.WriteString("• Clinic languages / socials:\n")
	b.WriteString("    SELECT l.language\n")
	b.WriteString("    FROM clinic_info ci JOIN clinic_languages l ON l.clinic_id = ci.id\n")
	b.WriteString("    ORDER BY ci.\"updatedAt\" DESC;\n")
	b.WriteString("    -- socials\n")
	b.WriteString("    SELECT s.platform, s.url\n")
	b.WriteString("    FROM clinic_info ci JOIN clinic_socials s ON s.clinic_id = ci.id\n")
	b.WriteString("    ORDER BY ci.\"updatedAt\" DESC;\n\n")
	b.WriteString("• Pricing (price/cost/fee/費用/價錢/收費):\n")
	b.WriteString("    -- If a service name is mentioned, join to services; otherwise query pricing directly.\n")
	b.WriteString("    -- Example with placeholder <service>:\n")
	b.WriteString("    SELECT p.item, p.type, p.category, p.price, p.max\n")
	b.WriteString("    FROM pricing p\n")
	b.WriteString("    WHERE p.category ILIKE '%' || <service> || '%'\n")
	b.WriteString("       OR p.service_id IN (\n")
	b.WriteString("            SELECT id FROM services WHERE name ILIKE '%' || <service> || '%'\n")
	b.WriteString("       )\n")
	b.WriteString("    ORDER BY p.price IS NULL, p.price ASC\n")
	fmt.Fprintf(&b, "    LIMIT %d;\n\n", topK)
	b.WriteString("• Services / practitioners / booking context:\n")
	b.WriteString("    -- Use services, team_members, team_services with explicit joins.\n")
	b.WriteString("    -- Example listing practitioners for a service name placeholder <service>:\n")
	b.WriteString("    SELECT tm.\"fullName\", tm.title, tm.\"janeAppId\", s.name AS service\n")
	b.WriteString("    FROM services s\n")
	b.WriteString("    JOIN team_services ts ON ts.service_id = s.id\n")
	b.WriteString("    JOIN team_members tm ON tm.id = ts.practitioner_id\n")
	b.WriteString("    WHERE s.name ILIKE '%' || <service> || '%'\n")
	fmt.Fprintf(&b, "    LIMIT %d;\n\n", topK)
	b.WriteString("• Counts (how many …):\n")
	fmt.Fprintf(&b, "    -- Use COUNT(*). Keep it to one SELECT and still apply LIMIT %d if reasonable.\n\n", topK)
	b.WriteString("User Question: ")
	b.WriteString(question)
	b.WriteString("\nReturn only the SQL query.")
	return b.String()
}

// GenerationSystem is the system prompt for final answer generation.
func GenerationSystem(targetLang string) string {
	var b strings.Builder
	b.WriteString("You are a bilingual (EN, ZH) clinic concierge for a Traditional Chinese Medicine clinic.\n\n")
	b.WriteString("SAFETY:\n")
	b.WriteString(" - You cannot provide medical diagnoses or emergency help. For urgent symptoms, instruct the user to seek immediate care.\n\n")
	b.WriteString("AVAILABILITY/BOOKING:\n")
	b.WriteString(" - Do NOT claim live appointment availability. Refer users to the online booking system.\n\n")
	b.WriteString("PRICING:\n")
	b.WriteString(" - If the context contains pricing rows (e.g., `item`, `type`, `category`, `price`, `max`), answer pricing questions directly from those rows.\n")
	b.WriteString(" - Prefer concise bullet points. Include price and type (e.g., Initial / Follow-up). If `max` exists, show it as a range.\n")
	b.WriteString(" - If pricing for the asked service is not found, clearly say it is not listed and show any related pricing you do have.\n\n")
	b.WriteString("PARSING SQL CONTEXT:\n")
	b.WriteString(" - SQL results appear under \"## Structured Results (SQL)\" as a GitHub-style table with a header row.\n")
	b.WriteString(" - Read exact column values from that table. Common columns include: fullName, title, janeAppId, name (service).\n\n")
	b.WriteString("BOOKING LINKS:\n")
	b.WriteString(" - Output ONLY real links. Never output placeholders, variables, or notes like “replace <janeAppId>”.\n")
	b.WriteString(" - Provide booking links only when the user asks to book OR mentions a service/practitioner.\n")
	b.WriteString(" - If any SQL row has a non-null janeAppId:\n")
	b.WriteString("     • Build a Markdown link whose text is “Book with ” + the row's fullName,\n")
	b.WriteString("       and whose URL is the booking base + \"/#/staff_member/\" + the exact janeAppId value.\n")
	b.WriteString(" - If no janeAppId is present, do NOT invent one and do NOT mention replacements.\n")
	b.WriteString("     • Use the base link instead: [Book online](booking base) / [線上預約](booking base)\n")
	b.WriteString(" - If multiple practitioners match, list each on its own line with its own real link (up to 5).\n")
	b.WriteString(" - QUALITY GATE for final answer:\n")
	b.WriteString("     • The final text MUST NOT contain the characters “<” or “>”.\n")
	b.WriteString("     • The final text MUST NOT contain the words “placeholder”, “replace”, or “janeAppId” unless it's inside a real URL.\n\n")
	b.WriteString("SERVICES (GROUNDING & NON-HALLUCINATION):\n")
	b.WriteString(" - Treat any mentioned service as a hypothesis. Confirm it ONLY if it appears in the provided context (SQL rows or retrieved docs).\n")
	b.WriteString(" - If a requested service is NOT present in the context, clearly state that it is not listed at this clinic.\n")
	b.WriteString(" - When possible, list the services that DO appear in context so the user can choose among them.\n")
	b.WriteString(" - Do NOT invent services or practitioners that are not present in the context.\n\n")
	b.WriteString("PUBLIC DATA:\n")
	b.WriteString(" - You may share address, hours, phone, email, booking link, services, pricing when present in context.\n\n")
	b.WriteString("FAQ / POLICY PRECEDENCE:\n")
	b.WriteString(" - If the context includes FAQ or policy text that directly answers the question (e.g., direct billing), summarize that answer faithfully and concisely.\n")
	b.WriteString(" - Prefer explicit FAQ answers over generic guesses.\n\n")
	b.WriteString("LANGUAGE:\n")
	fmt.Fprintf(&b, " - Respond in **%s**. If it starts with 'zh', use Traditional Chinese (繁體中文). Do not switch based on context; obey %s.\n\n", targetLang, targetLang)
	b.WriteString("STYLE:\n")
	b.WriteString(" - Be concise. Use bullets for lists. Use Markdown links (no bare URLs). Answer ONLY from the given context when specific facts are needed.")
	return b.String()
}

// GenerationUser is the human turn carrying the booking base, assembled
// context, and sanitized query.
func GenerationUser(bookingBase, context, query string) string {
	return fmt.Sprintf("Booking base (for links): %s\nContext:\n%s\nUser (PII-redacted): %s\nAnswer:",
		bookingBase, context, query)
}
